package dto

import "GROUPGO_BACK-END/internal/models"

// UpsertProfileRequest is the full profile document. Upsert semantics: the
// caller supplies every field, typically an unmodified read plus edits.
type UpsertProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	ProfilePic  string `json:"profile_pic"`
	ShortBio    string `json:"short_bio"`
	HomeAirport string `json:"home_airport"`
	PassportID  string `json:"passport_id"`
}

// ProfileResponse envelope. Profile is null when the account never created
// one.
type ProfileResponse struct {
	Profile *models.UserProfile `json:"profile"`
}
