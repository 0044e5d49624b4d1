package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"GROUPGO_BACK-END/internal/models"
	"GROUPGO_BACK-END/internal/utils"
	"GROUPGO_BACK-END/pkg/logger"
)

// InvitationStore owns the invitation lifecycle. An invitation is written
// once, answered once, and never deleted; history is retained even when the
// trip it points at is gone.
type InvitationStore struct {
	client *firestore.Client
	log    *logger.Logger
}

// NewInvitationStore creates an InvitationStore backed by the shared
// Firestore client.
func NewInvitationStore(clients *Clients, log *logger.Logger) *InvitationStore {
	return &InvitationStore{
		client: clients.Firestore,
		log:    log.WithField("component", "invitation_store"),
	}
}

func (s *InvitationStore) invitations() *firestore.CollectionRef {
	return s.client.Collection(invitationsCollection)
}

// Send writes a pending invitation. The target email is normalized before
// persisting, since acceptance matches invitations to accounts by that
// field. Sending twice to the same address is legal and yields two pending
// documents.
func (s *InvitationStore) Send(ctx context.Context, caller Identity, tripID, tripName, invitedEmail string) (string, error) {
	if !caller.Authenticated() {
		return "", ErrNotAuthenticated
	}

	inv := models.Invitation{
		TripID:         tripID,
		TripName:       tripName,
		InvitedByUID:   caller.UID,
		InvitedByEmail: caller.Email,
		InvitedEmail:   utils.NormalizeEmail(invitedEmail),
		Status:         models.InvitationPending,
		CreatedAt:      time.Now(),
	}

	id := uuid.NewString()
	if _, err := s.invitations().Doc(id).Set(ctx, inv); err != nil {
		return "", fmt.Errorf("send invitation: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"invitation_id": id,
		"trip_id":       tripID,
		"invited_email": inv.InvitedEmail,
	}).Info("sent invitation")
	return id, nil
}

// ListPending returns the caller's open invitations, newest first. An
// unauthenticated caller gets an empty result, not an error.
func (s *InvitationStore) ListPending(ctx context.Context, caller Identity) ([]models.Invitation, error) {
	if !caller.Authenticated() {
		return []models.Invitation{}, nil
	}
	invitations, err := decodeInvitations(s.pendingQuery(caller).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	return invitations, nil
}

// StreamPending is the live variant of ListPending. For an unauthenticated
// caller the channel delivers one empty result and closes immediately.
func (s *InvitationStore) StreamPending(ctx context.Context, caller Identity) (<-chan []models.Invitation, <-chan error) {
	errc := make(chan error, 1)
	if !caller.Authenticated() {
		out := make(chan []models.Invitation, 1)
		out <- []models.Invitation{}
		close(out)
		return out, errc
	}
	return watchInvitations(ctx, s.pendingQuery(caller), errc), errc
}

// ListForTrip returns every invitation for a trip regardless of status,
// newest first.
func (s *InvitationStore) ListForTrip(ctx context.Context, tripID string) ([]models.Invitation, error) {
	invitations, err := decodeInvitations(s.tripQuery(tripID).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list invitations for trip %s: %w", tripID, err)
	}
	return invitations, nil
}

// StreamForTrip is the live variant of ListForTrip.
func (s *InvitationStore) StreamForTrip(ctx context.Context, tripID string) (<-chan []models.Invitation, <-chan error) {
	errc := make(chan error, 1)
	return watchInvitations(ctx, s.tripQuery(tripID), errc), errc
}

// Accept marks the invitation accepted and appends the caller to the trip
// roster, atomically. Both writes commit together or not at all: a crash or
// conflicting writer must never leave an accepted invitation without the
// matching membership, or the reverse. The body reads both documents before
// writing and calls nothing external, so the client's conflict retry can
// re-run it safely. Accepting an already-accepted invitation is a no-op.
func (s *InvitationStore) Accept(ctx context.Context, caller Identity, invitationID, tripID string) error {
	if !caller.Authenticated() {
		return ErrNotAuthenticated
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		invRef := s.invitations().Doc(invitationID)
		tripRef := s.client.Collection(tripsCollection).Doc(tripID)

		invDoc, err := tx.Get(invRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("invitation %s: %w", invitationID, ErrNotFound)
			}
			return err
		}
		tripDoc, err := tx.Get(tripRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("trip %s: %w", tripID, ErrNotFound)
			}
			return err
		}

		var inv models.Invitation
		if err := invDoc.DataTo(&inv); err != nil {
			return err
		}
		var trip models.Trip
		if err := tripDoc.DataTo(&trip); err != nil {
			return err
		}

		plan, err := planAcceptance(inv, trip, caller, time.Now())
		if err != nil {
			return err
		}
		if plan.satisfied {
			return nil
		}

		if err := tx.Update(invRef, plan.invitation); err != nil {
			return err
		}
		if plan.trip != nil {
			return tx.Update(tripRef, plan.trip)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(map[string]interface{}{
		"invitation_id": invitationID,
		"trip_id":       tripID,
		"uid":           caller.UID,
	}).Info("accepted invitation")
	return nil
}

// acceptancePlan is the set of writes an acceptance produces. A nil trip
// slice means the caller was already on the roster.
type acceptancePlan struct {
	satisfied  bool
	invitation []firestore.Update
	trip       []firestore.Update
}

// planAcceptance computes the acceptance writes from the current state of
// both documents. It is pure so the surrounding transaction can re-invoke it
// on conflict with freshly read state.
func planAcceptance(inv models.Invitation, trip models.Trip, caller Identity, now time.Time) (acceptancePlan, error) {
	switch inv.Status {
	case models.InvitationAccepted:
		// Already terminal the same way; treat as satisfied.
		return acceptancePlan{satisfied: true}, nil
	case models.InvitationDeclined:
		return acceptancePlan{}, ErrInvitationClosed
	}

	// The account may have no email of its own; fall back to the address
	// the invitation was sent to.
	email := caller.Email
	if email == "" {
		email = inv.InvitedEmail
	}
	display := caller.DisplayName
	if display == "" {
		display = email
	}

	plan := acceptancePlan{
		invitation: []firestore.Update{
			{Path: "status", Value: models.InvitationAccepted},
			{Path: "acceptedAt", Value: now},
			{Path: "acceptedByUid", Value: caller.UID},
			{Path: "acceptedByDisplayName", Value: display},
		},
	}

	if !trip.HasParticipant(caller.UID) {
		participants := append(append([]string{}, trip.Participants...), caller.UID)
		emails := append(append([]string{}, trip.ParticipantsEmails...), email)
		plan.trip = []firestore.Update{
			{Path: "participants", Value: participants},
			{Path: "participantsEmails", Value: emails},
		}
	}

	return plan, nil
}

// Decline marks the invitation declined. No trip side effect. Like Accept,
// the terminal states are sticky: declining twice is a no-op, declining an
// accepted invitation fails.
func (s *InvitationStore) Decline(ctx context.Context, caller Identity, invitationID string) error {
	if !caller.Authenticated() {
		return ErrNotAuthenticated
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := s.invitations().Doc(invitationID)
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("invitation %s: %w", invitationID, ErrNotFound)
			}
			return err
		}
		var inv models.Invitation
		if err := doc.DataTo(&inv); err != nil {
			return err
		}
		switch inv.Status {
		case models.InvitationDeclined:
			return nil
		case models.InvitationAccepted:
			return ErrInvitationClosed
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: models.InvitationDeclined},
		})
	})
	if err != nil {
		return err
	}

	s.log.WithField("invitation_id", invitationID).Info("declined invitation")
	return nil
}

func (s *InvitationStore) pendingQuery(caller Identity) firestore.Query {
	return s.invitations().
		Where("invitedEmail", "==", utils.NormalizeEmail(caller.Email)).
		Where("status", "==", models.InvitationPending).
		OrderBy("createdAt", firestore.Desc)
}

func (s *InvitationStore) tripQuery(tripID string) firestore.Query {
	return s.invitations().
		Where("tripId", "==", tripID).
		OrderBy("createdAt", firestore.Desc)
}
