package models

import "time"

// Trip represents a trip document in the "trips" collection.
// Budget and NumberOfPeople are display strings on the wire; parse them
// before doing arithmetic.
type Trip struct {
	ID                 string    `firestore:"-" json:"id"`
	Name               string    `firestore:"name" json:"name"`
	Destination        string    `firestore:"destination" json:"destination"`
	StartDate          string    `firestore:"startDate" json:"start_date"`
	EndDate            string    `firestore:"endDate" json:"end_date"`
	Budget             string    `firestore:"budget" json:"budget"`
	NumberOfPeople     string    `firestore:"numberOfPeople" json:"number_of_people"`
	CreatedBy          string    `firestore:"createdBy" json:"created_by"`
	CreatedByEmail     string    `firestore:"createdByEmail" json:"created_by_email"`
	CreatedAt          time.Time `firestore:"createdAt" json:"created_at"`
	Participants       []string  `firestore:"participants" json:"participants"`
	ParticipantsEmails []string  `firestore:"participantsEmails" json:"participants_emails"`
}

// IsOwner reports whether uid is the trip organizer.
func (t Trip) IsOwner(uid string) bool {
	return uid != "" && t.CreatedBy == uid
}

// HasParticipant reports whether uid is already on the roster.
func (t Trip) HasParticipant(uid string) bool {
	for _, p := range t.Participants {
		if p == uid {
			return true
		}
	}
	return false
}
