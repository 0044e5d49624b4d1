package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"GROUPGO_BACK-END/internal/models"
	"GROUPGO_BACK-END/pkg/logger"
)

// ProfileStore owns the per-account profile documents, decoupled from the
// identity provider's own minimal fields. One document per uid, upsert
// semantics only.
type ProfileStore struct {
	client *firestore.Client
	auth   *auth.Client
	log    *logger.Logger
}

// NewProfileStore creates a ProfileStore backed by the shared clients.
func NewProfileStore(clients *Clients, log *logger.Logger) *ProfileStore {
	return &ProfileStore{
		client: clients.Firestore,
		auth:   clients.Auth,
		log:    log.WithField("component", "profile_store"),
	}
}

func (s *ProfileStore) profiles() *firestore.CollectionRef {
	return s.client.Collection(profilesCollection)
}

func (s *ProfileStore) users() *firestore.CollectionRef {
	return s.client.Collection(usersCollection)
}

// Upsert writes the caller's full profile document, creating it if absent.
// The caller supplies the complete object; updatedAt is refreshed on every
// write and createdAt is seeded on the first one. A non-empty display name
// is propagated to the identity provider, best effort.
func (s *ProfileStore) Upsert(ctx context.Context, caller Identity, profile models.UserProfile) error {
	if !caller.Authenticated() {
		return ErrNotAuthenticated
	}

	profile.UID = caller.UID
	now := time.Now()
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}

	if _, err := s.profiles().Doc(profile.UID).Set(ctx, profile); err != nil {
		return fmt.Errorf("upsert profile %s: %w", profile.UID, err)
	}

	if profile.DisplayName != "" {
		update := (&auth.UserToUpdate{}).DisplayName(profile.DisplayName)
		if _, err := s.auth.UpdateUser(ctx, profile.UID, update); err != nil {
			s.log.WithError(err).WithField("uid", profile.UID).Warn("display name not propagated to identity provider")
		}
	}

	s.log.WithField("uid", profile.UID).Info("upserted profile")
	return nil
}

// Get fetches a profile document. Returns nil without error when the
// account never created one.
func (s *ProfileStore) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	doc, err := s.profiles().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %s: %w", uid, err)
	}
	var profile models.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	return &profile, nil
}

// SaveUserRecord seeds the signup-time user document used for display-name
// lookups on participant lists.
func (s *ProfileStore) SaveUserRecord(ctx context.Context, uid, firstName, lastName, email string) error {
	rec := models.UserRecord{
		UID:         uid,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DisplayName: strings.TrimSpace(firstName + " " + lastName),
	}
	if _, err := s.users().Doc(uid).Set(ctx, rec); err != nil {
		return fmt.Errorf("save user record %s: %w", uid, err)
	}
	return nil
}
