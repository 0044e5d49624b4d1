package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GROUPGO_BACK-END/internal/models"
)

func rosterTrip() models.Trip {
	return models.Trip{
		ID:                 "trip-1",
		CreatedBy:          "owner-uid",
		CreatedByEmail:     "owner@example.com",
		Participants:       []string{"owner-uid", "friend-uid", "other-uid"},
		ParticipantsEmails: []string{"owner@example.com", "friend@example.com", "other@example.com"},
		NumberOfPeople:     "3",
	}
}

func TestPlanRemoval(t *testing.T) {
	t.Run("removes the matching pair and recounts", func(t *testing.T) {
		participants, emails, headcount, err := planRemoval(rosterTrip(), "friend-uid", "friend@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"owner-uid", "other-uid"}, participants)
		assert.Equal(t, []string{"owner@example.com", "other@example.com"}, emails)
		assert.Equal(t, "2", headcount)
	})

	t.Run("matches by uid alone", func(t *testing.T) {
		participants, emails, _, err := planRemoval(rosterTrip(), "friend-uid", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"owner-uid", "other-uid"}, participants)
		assert.Equal(t, []string{"owner@example.com", "other@example.com"}, emails)
	})

	t.Run("matches by email case-insensitively", func(t *testing.T) {
		participants, emails, _, err := planRemoval(rosterTrip(), "", "Friend@Example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"owner-uid", "other-uid"}, participants)
		assert.Equal(t, []string{"owner@example.com", "other@example.com"}, emails)
	})

	t.Run("rosters stay the same length after removal", func(t *testing.T) {
		participants, emails, _, err := planRemoval(rosterTrip(), "other-uid", "other@example.com")
		require.NoError(t, err)
		assert.Len(t, emails, len(participants))
	})

	t.Run("organizer cannot be removed by uid", func(t *testing.T) {
		_, _, _, err := planRemoval(rosterTrip(), "owner-uid", "")
		assert.ErrorIs(t, err, ErrCannotRemoveOrganizer)
	})

	t.Run("organizer cannot be removed by email", func(t *testing.T) {
		_, _, _, err := planRemoval(rosterTrip(), "", "OWNER@example.com")
		assert.ErrorIs(t, err, ErrCannotRemoveOrganizer)
	})

	t.Run("unknown participant leaves the roster unchanged", func(t *testing.T) {
		participants, emails, headcount, err := planRemoval(rosterTrip(), "stranger-uid", "stranger@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"owner-uid", "friend-uid", "other-uid"}, participants)
		assert.Equal(t, []string{"owner@example.com", "friend@example.com", "other@example.com"}, emails)
		assert.Equal(t, "3", headcount)
	})

	t.Run("headcount never drops below one", func(t *testing.T) {
		trip := models.Trip{
			CreatedBy:          "owner-uid",
			CreatedByEmail:     "owner@example.com",
			Participants:       []string{"friend-uid"},
			ParticipantsEmails: []string{"friend@example.com"},
		}
		participants, _, headcount, err := planRemoval(trip, "friend-uid", "")
		require.NoError(t, err)
		assert.Empty(t, participants)
		assert.Equal(t, "1", headcount)
	})
}

func TestTripMembership(t *testing.T) {
	trip := rosterTrip()

	t.Run("IsOwner matches only the creator", func(t *testing.T) {
		assert.True(t, trip.IsOwner("owner-uid"))
		assert.False(t, trip.IsOwner("friend-uid"))
		assert.False(t, trip.IsOwner(""))
	})

	t.Run("HasParticipant scans the roster", func(t *testing.T) {
		assert.True(t, trip.HasParticipant("friend-uid"))
		assert.False(t, trip.HasParticipant("stranger-uid"))
	})
}
