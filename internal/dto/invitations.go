package dto

import "GROUPGO_BACK-END/internal/models"

// SendInvitationRequest represents the payload to invite an email address
// to a trip. trip_name is the denormalized display copy stored on the
// invitation.
type SendInvitationRequest struct {
	TripID       string `json:"trip_id"`
	TripName     string `json:"trip_name"`
	InvitedEmail string `json:"invited_email"`
}

// SendInvitationResponse envelope
type SendInvitationResponse struct {
	InvitationID string `json:"invitation_id"`
}

// AcceptInvitationRequest carries the trip the invitation points at
type AcceptInvitationRequest struct {
	TripID string `json:"trip_id"`
}

// InvitationListResponse envelope for one-shot and streamed invitation lists
type InvitationListResponse struct {
	Invitations []models.Invitation `json:"invitations"`
}
