package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GROUPGO_BACK-END/internal/models"
)

func tripAt(id string, created time.Time) models.Trip {
	return models.Trip{ID: id, Name: "Trip " + id, CreatedAt: created}
}

func tripIDs(trips []models.Trip) []string {
	ids := make([]string, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestMergeTrips(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := tripAt("a", base.Add(3*time.Hour))
	b := tripAt("b", base.Add(2*time.Hour))
	c := tripAt("c", base.Add(1*time.Hour))

	t.Run("unions and deduplicates by id", func(t *testing.T) {
		merged := mergeTrips([]models.Trip{a, b}, []models.Trip{b, c})
		assert.Equal(t, []string{"a", "b", "c"}, tripIDs(merged))
	})

	t.Run("orders by createdAt descending", func(t *testing.T) {
		merged := mergeTrips([]models.Trip{c}, []models.Trip{a, b})
		assert.Equal(t, []string{"a", "b", "c"}, tripIDs(merged))
	})

	t.Run("result does not depend on which side a shared trip came from", func(t *testing.T) {
		left := mergeTrips([]models.Trip{a, b}, []models.Trip{b, c})
		right := mergeTrips([]models.Trip{b, c}, []models.Trip{a, b})
		assert.Equal(t, tripIDs(left), tripIDs(right))
	})

	t.Run("empty inputs yield empty non-nil result", func(t *testing.T) {
		merged := mergeTrips(nil, nil)
		require.NotNil(t, merged)
		assert.Empty(t, merged)
	})
}

func TestMergeTripStreams(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := tripAt("a", base.Add(3*time.Hour))
	b := tripAt("b", base.Add(2*time.Hour))
	c := tripAt("c", base.Add(1*time.Hour))

	recv := func(t *testing.T, out <-chan []models.Trip) []models.Trip {
		t.Helper()
		select {
		case trips, ok := <-out:
			require.True(t, ok, "stream closed before expected emission")
			return trips
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for emission")
			return nil
		}
	}

	t.Run("emits nothing until both sides have reported", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		owned := make(chan []models.Trip)
		participating := make(chan []models.Trip)
		out := mergeTripStreams(ctx, owned, participating)

		owned <- []models.Trip{a}
		select {
		case trips := <-out:
			t.Fatalf("unexpected emission before second side: %v", tripIDs(trips))
		case <-time.After(50 * time.Millisecond):
		}

		participating <- []models.Trip{b}
		assert.Equal(t, []string{"a", "b"}, tripIDs(recv(t, out)))
	})

	t.Run("merged view is the same whichever side reports first", func(t *testing.T) {
		run := func(ownedFirst bool) []string {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			owned := make(chan []models.Trip)
			participating := make(chan []models.Trip)
			out := mergeTripStreams(ctx, owned, participating)

			if ownedFirst {
				owned <- []models.Trip{a, b}
				participating <- []models.Trip{b, c}
			} else {
				participating <- []models.Trip{b, c}
				owned <- []models.Trip{a, b}
			}
			return tripIDs(recv(t, out))
		}

		assert.Equal(t, run(true), run(false))
		assert.Equal(t, []string{"a", "b", "c"}, run(true))
	})

	t.Run("recomputes the union on every later event", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		owned := make(chan []models.Trip)
		participating := make(chan []models.Trip)
		out := mergeTripStreams(ctx, owned, participating)

		owned <- []models.Trip{a}
		participating <- []models.Trip{b}
		assert.Equal(t, []string{"a", "b"}, tripIDs(recv(t, out)))

		participating <- []models.Trip{b, c}
		assert.Equal(t, []string{"a", "b", "c"}, tripIDs(recv(t, out)))

		owned <- []models.Trip{}
		assert.Equal(t, []string{"b", "c"}, tripIDs(recv(t, out)))
	})

	t.Run("closes when either input closes", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		owned := make(chan []models.Trip)
		participating := make(chan []models.Trip)
		out := mergeTripStreams(ctx, owned, participating)

		close(owned)
		select {
		case _, ok := <-out:
			assert.False(t, ok, "stream should close with its input")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for close")
		}
	})

	t.Run("closes when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		owned := make(chan []models.Trip)
		participating := make(chan []models.Trip)
		out := mergeTripStreams(ctx, owned, participating)

		cancel()
		select {
		case _, ok := <-out:
			assert.False(t, ok, "stream should close with its context")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for close")
		}
	})
}
