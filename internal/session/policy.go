package session

import (
	"slices"
	"time"

	"github.com/bjulian5/ghprs/internal/model"
)

// DefaultTTL is how long fetched PRs are trusted before GitHub is asked again
const DefaultTTL = 5 * time.Minute

// IsDue reports whether a session last refreshed at last needs a refresh at now.
// A session that was never refreshed is always due.
func IsDue(last model.NullTime, now time.Time, ttl time.Duration) bool {
	if !last.Valid {
		return true
	}
	return now.Sub(last.Time) > ttl
}

// ReconcileResult summarizes what a reconciliation changed
type ReconcileResult struct {
	Added   int // PRs seen for the first time
	Updated int // PRs already tracked whose payload was replaced
	Reset   int // tracked PRs whose acknowledgement was cleared by a new review
	Pruned  int // tracked PRs missing from the fetch and dropped
}

// Reconcile merges freshly fetched PRs into the store.
//
// Known PRs get their payload replaced, and lose their acknowledgement only when the
// incoming latest review is newer than the stored one. Unknown PRs start unacknowledged.
// Every tracked PR absent from fetched is removed.
func Reconcile(fetched []model.PR, store *Store) ReconcileResult {
	var result ReconcileResult
	seen := make(map[string]struct{}, len(fetched))

	for _, pr := range fetched {
		seen[pr.ID] = struct{}{}

		existing, ok := store.Get(pr.ID)
		if !ok {
			store.Upsert(model.TrackedPR{PR: pr})
			result.Added++
			continue
		}

		incoming := pr.LatestReviewTime()
		if incoming.Valid && incoming.After(existing.PR.LatestReviewTime()) && existing.Acknowledged {
			existing.Acknowledged = false
			result.Reset++
		}
		existing.PR = pr
		store.Upsert(existing)
		result.Updated++
	}

	stale := slices.Collect(store.Keys())
	for _, id := range stale {
		if _, ok := seen[id]; !ok {
			store.Remove(id)
			result.Pruned++
		}
	}

	return result
}
