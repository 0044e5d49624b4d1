package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Collection names in the hosted document store.
const (
	tripsCollection       = "trips"
	invitationsCollection = "invitations"
	profilesCollection    = "profiles"
	usersCollection       = "users"
)

// Identity is the authenticated caller, established by the auth middleware
// from a verified Firebase ID token. A zero Identity means no session.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Authenticated reports whether the identity carries an active session.
func (id Identity) Authenticated() bool {
	return id.UID != ""
}

// Clients bundles the Firebase handles shared by all stores.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// NewClients initializes the Firebase app and returns the Firestore and Auth
// clients. credentialsFile may be empty, in which case application default
// credentials are used.
func NewClients(ctx context.Context, projectID, credentialsFile string) (*Clients, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("initialize auth client: %w", err)
	}

	return &Clients{Firestore: fs, Auth: authClient}, nil
}

// Close releases the underlying Firestore connection.
func (c *Clients) Close() error {
	return c.Firestore.Close()
}
