package models

import "time"

// UserProfile is the per-account document in the "profiles" collection,
// keyed by the Firebase uid. Writes are full-document upserts.
type UserProfile struct {
	UID         string    `firestore:"uid" json:"uid"`
	FirstName   string    `firestore:"firstName" json:"first_name"`
	LastName    string    `firestore:"lastName" json:"last_name"`
	DisplayName string    `firestore:"displayName" json:"display_name"`
	ProfilePic  string    `firestore:"profilePic" json:"profile_pic"`
	ShortBio    string    `firestore:"shortBio" json:"short_bio"`
	HomeAirport string    `firestore:"homeAirport" json:"home_airport"`
	PassportID  string    `firestore:"passportId" json:"passport_id"`
	CreatedAt   time.Time `firestore:"createdAt" json:"created_at"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updated_at"`
}

// UserRecord is the signup-time seed document in the "users" collection,
// used to resolve display names for participant lists.
type UserRecord struct {
	UID         string `firestore:"uid" json:"uid"`
	FirstName   string `firestore:"firstName" json:"first_name"`
	LastName    string `firestore:"lastName" json:"last_name"`
	Email       string `firestore:"email" json:"email"`
	DisplayName string `firestore:"displayName" json:"display_name"`
}
