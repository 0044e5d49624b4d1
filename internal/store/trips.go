package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"GROUPGO_BACK-END/internal/models"
	"GROUPGO_BACK-END/pkg/logger"
)

// TripStore owns CRUD and live queries over trip documents. Every mutator
// keeps participants and participantsEmails the same length and
// index-aligned.
type TripStore struct {
	client *firestore.Client
	log    *logger.Logger
}

// NewTripStore creates a TripStore backed by the shared Firestore client.
func NewTripStore(clients *Clients, log *logger.Logger) *TripStore {
	return &TripStore{
		client: clients.Firestore,
		log:    log.WithField("component", "trip_store"),
	}
}

func (s *TripStore) trips() *firestore.CollectionRef {
	return s.client.Collection(tripsCollection)
}

// Create writes a new trip owned by the caller. The caller is seeded as the
// first participant on both roster slices.
func (s *TripStore) Create(ctx context.Context, caller Identity, name, destination, startDate, endDate, budget, numberOfPeople string) (string, error) {
	if !caller.Authenticated() {
		return "", ErrNotAuthenticated
	}

	trip := models.Trip{
		Name:               name,
		Destination:        destination,
		StartDate:          startDate,
		EndDate:            endDate,
		Budget:             budget,
		NumberOfPeople:     numberOfPeople,
		CreatedBy:          caller.UID,
		CreatedByEmail:     caller.Email,
		CreatedAt:          time.Now(),
		Participants:       []string{caller.UID},
		ParticipantsEmails: []string{caller.Email},
	}

	id := uuid.NewString()
	if _, err := s.trips().Doc(id).Set(ctx, trip); err != nil {
		return "", fmt.Errorf("create trip: %w", err)
	}

	s.log.WithFields(map[string]interface{}{"trip_id": id, "uid": caller.UID}).Info("created trip")
	return id, nil
}

// CreateExploratory writes a trip with only a name decided yet. Destination
// and dates stay "TBD" until the owner edits them.
func (s *TripStore) CreateExploratory(ctx context.Context, caller Identity, name string) (string, error) {
	return s.Create(ctx, caller, name, "TBD", "TBD", "TBD", "", "1")
}

// Get fetches a single trip document.
func (s *TripStore) Get(ctx context.Context, tripID string) (*models.Trip, error) {
	doc, err := s.trips().Doc(tripID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get trip %s: %w", tripID, err)
	}
	var trip models.Trip
	if err := doc.DataTo(&trip); err != nil {
		return nil, fmt.Errorf("decode trip %s: %w", tripID, err)
	}
	trip.ID = doc.Ref.ID
	return &trip, nil
}

// Update overwrites the editable display fields of a trip. The roster is
// never touched here. Only the organizer may update.
func (s *TripStore) Update(ctx context.Context, caller Identity, tripID, name, destination, budget, numberOfPeople, startDate, endDate string) error {
	if !caller.Authenticated() {
		return ErrNotAuthenticated
	}

	trip, err := s.Get(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.IsOwner(caller.UID) {
		return ErrNotOwner
	}

	_, err = s.trips().Doc(tripID).Update(ctx, []firestore.Update{
		{Path: "name", Value: name},
		{Path: "destination", Value: destination},
		{Path: "budget", Value: budget},
		{Path: "numberOfPeople", Value: numberOfPeople},
		{Path: "startDate", Value: startDate},
		{Path: "endDate", Value: endDate},
	})
	if err != nil {
		return fmt.Errorf("update trip %s: %w", tripID, err)
	}

	s.log.WithField("trip_id", tripID).Info("updated trip")
	return nil
}

// Delete hard-deletes a trip. Invitations referencing it are left in place.
// Only the organizer may delete.
func (s *TripStore) Delete(ctx context.Context, caller Identity, tripID string) error {
	if !caller.Authenticated() {
		return ErrNotAuthenticated
	}

	trip, err := s.Get(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.IsOwner(caller.UID) {
		return ErrNotOwner
	}

	if _, err := s.trips().Doc(tripID).Delete(ctx); err != nil {
		return fmt.Errorf("delete trip %s: %w", tripID, err)
	}

	s.log.WithField("trip_id", tripID).Info("deleted trip")
	return nil
}

// RemoveParticipant drops a participant from both roster slices in lock-step
// and recomputes numberOfPeople, all in one transaction so a concurrent
// acceptance cannot break the index alignment. The organizer cannot be
// removed.
func (s *TripStore) RemoveParticipant(ctx context.Context, caller Identity, tripID, participantUID, participantEmail string) error {
	if !caller.Authenticated() {
		return ErrNotAuthenticated
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := s.trips().Doc(tripID)
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var trip models.Trip
		if err := doc.DataTo(&trip); err != nil {
			return err
		}
		if !trip.IsOwner(caller.UID) {
			return ErrNotOwner
		}

		participants, emails, headcount, err := planRemoval(trip, participantUID, participantEmail)
		if err != nil {
			return err
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "participants", Value: participants},
			{Path: "participantsEmails", Value: emails},
			{Path: "numberOfPeople", Value: headcount},
		})
	})
	if err != nil {
		return err
	}

	s.log.WithFields(map[string]interface{}{"trip_id": tripID, "uid": participantUID}).Info("removed participant")
	return nil
}

// planRemoval computes the post-removal roster. It is pure so the
// transaction body stays retry-safe. Entries are dropped as aligned pairs:
// a pair goes when its uid matches, or, when an email was supplied, when its
// email matches.
func planRemoval(trip models.Trip, uid, email string) (participants, emails []string, numberOfPeople string, err error) {
	if uid != "" && uid == trip.CreatedBy {
		return nil, nil, "", ErrCannotRemoveOrganizer
	}
	if email != "" && strings.EqualFold(email, trip.CreatedByEmail) {
		return nil, nil, "", ErrCannotRemoveOrganizer
	}

	participants = make([]string, 0, len(trip.Participants))
	emails = make([]string, 0, len(trip.ParticipantsEmails))
	for i, p := range trip.Participants {
		var e string
		if i < len(trip.ParticipantsEmails) {
			e = trip.ParticipantsEmails[i]
		}
		if p == uid || (email != "" && strings.EqualFold(e, email)) {
			continue
		}
		participants = append(participants, p)
		emails = append(emails, e)
	}

	n := len(participants)
	if n < 1 {
		n = 1
	}
	return participants, emails, strconv.Itoa(n), nil
}

// ListUserTrips is the one-shot variant of StreamUserTrips: the union of
// trips the user owns and trips they participate in, deduplicated and
// ordered by createdAt descending.
func (s *TripStore) ListUserTrips(ctx context.Context, userID string) ([]models.Trip, error) {
	if userID == "" {
		return []models.Trip{}, nil
	}

	owned, err := decodeTrips(s.ownedQuery(userID).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list owned trips: %w", err)
	}
	participating, err := decodeTrips(s.participantQuery(userID).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list participant trips: %w", err)
	}
	return mergeTrips(owned, participating), nil
}

// StreamUserTrips composes two live subscriptions, trips the user created
// and trips whose roster contains them, into a single deduplicated,
// createdAt-descending view. The two underlying filters cannot be expressed
// as one server-side query, so the union is recomputed client-side on every
// event from either subscription. The result channel closes when ctx ends
// or a listener fails; a terminal failure arrives on the error channel.
func (s *TripStore) StreamUserTrips(ctx context.Context, userID string) (<-chan []models.Trip, <-chan error) {
	errc := make(chan error, 2)
	if userID == "" {
		out := make(chan []models.Trip, 1)
		out <- []models.Trip{}
		close(out)
		return out, errc
	}

	owned := watchTrips(ctx, s.ownedQuery(userID), errc)
	participating := watchTrips(ctx, s.participantQuery(userID), errc)
	return mergeTripStreams(ctx, owned, participating), errc
}

func (s *TripStore) ownedQuery(userID string) firestore.Query {
	return s.trips().
		Where("createdBy", "==", userID).
		OrderBy("createdAt", firestore.Desc)
}

func (s *TripStore) participantQuery(userID string) firestore.Query {
	return s.trips().Where("participants", "array-contains", userID)
}
