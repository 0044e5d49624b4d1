package store

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"GROUPGO_BACK-END/internal/models"
)

// Live query plumbing. A watch goroutine pushes the full result set of a
// query on every snapshot until ctx is cancelled. The result channel closes
// when the listener ends; a terminal listener failure is delivered on errc
// before the close. There is no automatic resubscription; callers decide
// whether to re-invoke.

func watchTrips(ctx context.Context, query firestore.Query, errc chan<- error) <-chan []models.Trip {
	out := make(chan []models.Trip)

	go func() {
		defer close(out)
		snaps := query.Snapshots(ctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					select {
					case errc <- err:
					default:
					}
				}
				return
			}
			trips, err := decodeTrips(snap.Documents)
			if err != nil {
				select {
				case errc <- err:
				default:
				}
				return
			}
			select {
			case out <- trips:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func watchInvitations(ctx context.Context, query firestore.Query, errc chan<- error) <-chan []models.Invitation {
	out := make(chan []models.Invitation)

	go func() {
		defer close(out)
		snaps := query.Snapshots(ctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					select {
					case errc <- err:
					default:
					}
				}
				return
			}
			invitations, err := decodeInvitations(snap.Documents)
			if err != nil {
				select {
				case errc <- err:
				default:
				}
				return
			}
			select {
			case out <- invitations:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func decodeTrips(docs *firestore.DocumentIterator) ([]models.Trip, error) {
	defer docs.Stop()
	trips := make([]models.Trip, 0)
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return trips, nil
		}
		if err != nil {
			return nil, err
		}
		var t models.Trip
		if err := doc.DataTo(&t); err != nil {
			return nil, err
		}
		t.ID = doc.Ref.ID
		trips = append(trips, t)
	}
}

func decodeInvitations(docs *firestore.DocumentIterator) ([]models.Invitation, error) {
	defer docs.Stop()
	invitations := make([]models.Invitation, 0)
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return invitations, nil
		}
		if err != nil {
			return nil, err
		}
		var inv models.Invitation
		if err := doc.DataTo(&inv); err != nil {
			return nil, err
		}
		inv.ID = doc.Ref.ID
		invitations = append(invitations, inv)
	}
}

// mergeTrips unions the owned and participant result sets, deduplicated by
// id (first occurrence wins) and ordered by createdAt descending.
func mergeTrips(owned, participating []models.Trip) []models.Trip {
	merged := make([]models.Trip, 0, len(owned)+len(participating))
	seen := make(map[string]bool, len(owned)+len(participating))
	for _, t := range owned {
		if !seen[t.ID] {
			seen[t.ID] = true
			merged = append(merged, t)
		}
	}
	for _, t := range participating {
		if !seen[t.ID] {
			seen[t.ID] = true
			merged = append(merged, t)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// mergeTripStreams combines the owned and participant subscriptions into one
// view. It holds the last result of each side and recomputes the full union
// on every event from either, regardless of arrival order. Nothing is
// emitted until both sides have reported at least once; the output closes
// when either input closes or ctx ends.
func mergeTripStreams(ctx context.Context, owned, participating <-chan []models.Trip) <-chan []models.Trip {
	out := make(chan []models.Trip)

	go func() {
		defer close(out)
		var lastOwned, lastParticipating []models.Trip
		var haveOwned, haveParticipating bool

		for {
			select {
			case trips, ok := <-owned:
				if !ok {
					return
				}
				lastOwned, haveOwned = trips, true
			case trips, ok := <-participating:
				if !ok {
					return
				}
				lastParticipating, haveParticipating = trips, true
			case <-ctx.Done():
				return
			}

			if !haveOwned || !haveParticipating {
				continue
			}
			select {
			case out <- mergeTrips(lastOwned, lastParticipating):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
