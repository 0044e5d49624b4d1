package store

import "errors"

// Store operations return these sentinels so handlers can map failures to
// HTTP statuses with errors.Is. Anything else is an unclassified backend
// failure.
var (
	// ErrNotAuthenticated is returned when an operation requiring a signed-in
	// caller is invoked without one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotOwner is returned when a caller tries to mutate a trip they did
	// not create.
	ErrNotOwner = errors.New("only the trip organizer can do this")

	// ErrCannotRemoveOrganizer is returned when a removal targets the trip
	// creator. The organizer is always on the roster.
	ErrCannotRemoveOrganizer = errors.New("cannot remove the trip organizer")

	// ErrInvitationClosed is returned when an accept or decline hits an
	// invitation that already left the pending state the other way.
	ErrInvitationClosed = errors.New("invitation already responded to")
)
