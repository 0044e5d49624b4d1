package models

import "time"

// Invitation status values. An invitation leaves "pending" exactly once and
// never returns to it; a resend creates a new document.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

// Invitation represents a document in the "invitations" collection.
// TripName is a denormalized copy taken at send time.
type Invitation struct {
	ID                    string     `firestore:"-" json:"id"`
	TripID                string     `firestore:"tripId" json:"trip_id"`
	TripName              string     `firestore:"tripName" json:"trip_name"`
	InvitedByUID          string     `firestore:"invitedByUid" json:"invited_by_uid"`
	InvitedByEmail        string     `firestore:"invitedByEmail" json:"invited_by_email"`
	InvitedEmail          string     `firestore:"invitedEmail" json:"invited_email"`
	Status                string     `firestore:"status" json:"status"`
	CreatedAt             time.Time  `firestore:"createdAt" json:"created_at"`
	AcceptedAt            *time.Time `firestore:"acceptedAt" json:"accepted_at,omitempty"`
	AcceptedByUID         string     `firestore:"acceptedByUid" json:"accepted_by_uid,omitempty"`
	AcceptedByDisplayName string     `firestore:"acceptedByDisplayName" json:"accepted_by_display_name,omitempty"`
}
