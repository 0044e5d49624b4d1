package store

import (
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GROUPGO_BACK-END/internal/models"
)

func updateValue(t *testing.T, updates []firestore.Update, path string) interface{} {
	t.Helper()
	for _, u := range updates {
		if u.Path == path {
			return u.Value
		}
	}
	t.Fatalf("no update for path %q", path)
	return nil
}

func pendingInvitation() models.Invitation {
	return models.Invitation{
		ID:           "inv-1",
		TripID:       "trip-1",
		TripName:     "Lisbon",
		InvitedEmail: "friend@example.com",
		Status:       models.InvitationPending,
	}
}

func invitedTrip() models.Trip {
	return models.Trip{
		ID:                 "trip-1",
		CreatedBy:          "owner-uid",
		CreatedByEmail:     "owner@example.com",
		Participants:       []string{"owner-uid"},
		ParticipantsEmails: []string{"owner@example.com"},
	}
}

func TestPlanAcceptance(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	caller := Identity{UID: "friend-uid", Email: "friend@example.com", DisplayName: "Friend"}

	t.Run("pending invitation flips and the caller joins the roster", func(t *testing.T) {
		plan, err := planAcceptance(pendingInvitation(), invitedTrip(), caller, now)
		require.NoError(t, err)
		assert.False(t, plan.satisfied)

		assert.Equal(t, models.InvitationAccepted, updateValue(t, plan.invitation, "status"))
		assert.Equal(t, now, updateValue(t, plan.invitation, "acceptedAt"))
		assert.Equal(t, "friend-uid", updateValue(t, plan.invitation, "acceptedByUid"))
		assert.Equal(t, "Friend", updateValue(t, plan.invitation, "acceptedByDisplayName"))

		require.NotNil(t, plan.trip)
		assert.Equal(t, []string{"owner-uid", "friend-uid"}, updateValue(t, plan.trip, "participants"))
		assert.Equal(t, []string{"owner@example.com", "friend@example.com"}, updateValue(t, plan.trip, "participantsEmails"))
	})

	t.Run("accepting twice is a no-op", func(t *testing.T) {
		inv := pendingInvitation()
		inv.Status = models.InvitationAccepted
		plan, err := planAcceptance(inv, invitedTrip(), caller, now)
		require.NoError(t, err)
		assert.True(t, plan.satisfied)
		assert.Nil(t, plan.invitation)
		assert.Nil(t, plan.trip)
	})

	t.Run("accepting a declined invitation fails", func(t *testing.T) {
		inv := pendingInvitation()
		inv.Status = models.InvitationDeclined
		_, err := planAcceptance(inv, invitedTrip(), caller, now)
		assert.ErrorIs(t, err, ErrInvitationClosed)
	})

	t.Run("existing participant is not appended again", func(t *testing.T) {
		trip := invitedTrip()
		trip.Participants = append(trip.Participants, "friend-uid")
		trip.ParticipantsEmails = append(trip.ParticipantsEmails, "friend@example.com")

		plan, err := planAcceptance(pendingInvitation(), trip, caller, now)
		require.NoError(t, err)
		assert.False(t, plan.satisfied)
		assert.NotNil(t, plan.invitation)
		assert.Nil(t, plan.trip, "roster writes should be skipped for a known participant")
	})

	t.Run("caller without an email inherits the invited address", func(t *testing.T) {
		bare := Identity{UID: "friend-uid"}
		plan, err := planAcceptance(pendingInvitation(), invitedTrip(), bare, now)
		require.NoError(t, err)

		assert.Equal(t, "friend@example.com", updateValue(t, plan.invitation, "acceptedByDisplayName"))
		assert.Equal(t, []string{"owner@example.com", "friend@example.com"}, updateValue(t, plan.trip, "participantsEmails"))
	})

	t.Run("display name falls back to the email", func(t *testing.T) {
		anon := Identity{UID: "friend-uid", Email: "friend@example.com"}
		plan, err := planAcceptance(pendingInvitation(), invitedTrip(), anon, now)
		require.NoError(t, err)
		assert.Equal(t, "friend@example.com", updateValue(t, plan.invitation, "acceptedByDisplayName"))
	})

	t.Run("input roster slices are not mutated", func(t *testing.T) {
		trip := invitedTrip()
		_, err := planAcceptance(pendingInvitation(), trip, caller, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"owner-uid"}, trip.Participants)
		assert.Equal(t, []string{"owner@example.com"}, trip.ParticipantsEmails)
	})
}
