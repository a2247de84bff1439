package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/bjulian5/ghprs/internal/model"
)

// Session tracks the PRs matching one selection and remembers which of them
// the user has acknowledged. All operations are serialized by a single mutex,
// including the GitHub fetch performed by a refresh.
type Session struct {
	settings
	name      string
	selection model.Selection
	fetcher   Fetcher

	mu          sync.Mutex
	store       *Store
	lastRefresh model.NullTime
	detached    bool
}

var _ Tracker = (*Session)(nil)

// New creates an empty, never refreshed session
func New(name string, selection model.Selection, fetcher Fetcher, opts ...Option) *Session {
	return newSession(name, selection, fetcher, newSettings(opts))
}

// Open creates a session and restores its persisted state, if any.
// A failed load is logged and the session starts empty.
func Open(ctx context.Context, name string, selection model.Selection, fetcher Fetcher, opts ...Option) *Session {
	return openSession(ctx, name, selection, fetcher, newSettings(opts))
}

func newSession(name string, selection model.Selection, fetcher Fetcher, st settings) *Session {
	st.logger = st.logger.With("session", name)
	return &Session{
		settings:  st,
		name:      name,
		selection: selection,
		fetcher:   fetcher,
		store:     NewStore(),
	}
}

func openSession(ctx context.Context, name string, selection model.Selection, fetcher Fetcher, st settings) *Session {
	s := newSession(name, selection, fetcher, st)
	if s.persister == nil {
		return s
	}

	state, err := s.persister.Load(ctx, name)
	if err != nil {
		s.logger.Warn("failed to load session state, starting empty", "error", err)
		return s
	}
	if state != nil {
		s.store = newStoreFrom(state.PRs)
		s.lastRefresh = state.LastRefresh
	}
	return s
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) Selection() model.Selection {
	return s.selection
}

// Unacknowledged returns reviewed PRs not yet acknowledged, oldest review first
func (s *Session) Unacknowledged(ctx context.Context) ([]model.PR, error) {
	return s.list(ctx, false)
}

// Acknowledged returns reviewed PRs already acknowledged, oldest review first
func (s *Session) Acknowledged(ctx context.Context) ([]model.PR, error) {
	return s.list(ctx, true)
}

// Acknowledge marks a PR as seen so it stays hidden until a newer review arrives
func (s *Session) Acknowledge(ctx context.Context, id string) error {
	return s.setAcknowledged(ctx, id, true)
}

// Unacknowledge puts a PR back into the unacknowledged listing
func (s *Session) Unacknowledge(ctx context.Context, id string) error {
	return s.setAcknowledged(ctx, id, false)
}

// Clear forgets every tracked PR and the refresh time, so the next query fetches again.
// It only fails for a session removed from its registry.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttachedLocked(); err != nil {
		return err
	}
	s.store.Clear()
	s.lastRefresh = model.NullTime{}
	s.logger.Info("cleared session")
	s.persistLocked(ctx)
	return nil
}

// ForceNextRefresh makes the next query fetch regardless of the TTL
func (s *Session) ForceNextRefresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttachedLocked(); err != nil {
		return err
	}
	s.lastRefresh = model.NullTime{}
	return nil
}

// Refresh fetches and reconciles if the TTL has expired
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.maybeRefreshLocked(ctx)
}

// State returns a copy of the session's persistable state
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked()
}

func (s *Session) list(ctx context.Context, acknowledged bool) ([]model.PR, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttachedLocked(); err != nil {
		return nil, err
	}
	if err := s.maybeRefreshLocked(ctx); err != nil {
		return nil, err
	}

	var prs []model.PR
	for pr := range s.store.Filtered(acknowledged) {
		if pr.LatestReviewTime().Valid {
			prs = append(prs, pr)
		}
	}
	sortByLatestReview(prs)
	return prs, nil
}

func (s *Session) setAcknowledged(ctx context.Context, id string, acknowledged bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttachedLocked(); err != nil {
		return err
	}
	if err := s.maybeRefreshLocked(ctx); err != nil {
		return err
	}

	tracked, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if tracked.Acknowledged != acknowledged {
		tracked.Acknowledged = acknowledged
		s.store.Upsert(tracked)
		s.persistLocked(ctx)
	}
	s.logger.Info("set acknowledgement", "pr", id, "acknowledged", acknowledged)
	return nil
}

func (s *Session) maybeRefreshLocked(ctx context.Context) error {
	if !IsDue(s.lastRefresh, time.Now(), s.ttl) {
		s.logger.Debug("using cached prs", "last_refresh", s.lastRefresh.Time)
		return nil
	}
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if err := s.fetcher.CheckAuth(ctx); err != nil {
		return fmt.Errorf("%w: session %s: %w", ErrRefreshFailed, s.name, err)
	}

	prs := s.fetchAll(ctx)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: session %s interrupted: %w", ErrRefreshFailed, s.name, err)
	}

	result := Reconcile(prs, s.store)
	s.lastRefresh = model.NewNullTime(time.Now())
	s.logger.Info("refreshed session",
		"fetched", len(prs),
		"added", result.Added,
		"updated", result.Updated,
		"reset", result.Reset,
		"pruned", result.Pruned,
	)

	s.persistLocked(ctx)
	return nil
}

// fetchAll queries every selected repository concurrently. A repository that fails
// is logged and contributes nothing.
func (s *Session) fetchAll(ctx context.Context) []model.PR {
	results := make([][]model.PR, len(s.selection.Repositories))

	p := pool.New().WithMaxGoroutines(s.maxConcurrentFetches)
	for i, repository := range s.selection.Repositories {
		p.Go(func() {
			prs, err := s.fetcher.ListPRs(ctx, repository, s.selection.Author)
			if err != nil {
				s.logger.Warn("failed to fetch prs, skipping repository",
					"repository", repository,
					"author", s.selection.Author,
					"error", err,
				)
				return
			}
			results[i] = prs
		})
	}
	p.Wait()

	var all []model.PR
	for _, prs := range results {
		all = append(all, prs...)
	}
	return all
}

func (s *Session) stateLocked() model.SessionState {
	return model.SessionState{
		LastRefresh: s.lastRefresh,
		PRs:         s.store.Snapshot(),
	}
}

// persistLocked saves the state. Failures are logged, never returned.
func (s *Session) persistLocked(ctx context.Context) {
	if s.persister == nil || s.detached {
		return
	}
	if err := s.persister.Save(ctx, s.name, s.stateLocked()); err != nil {
		s.logger.Warn("failed to save session state", "error", err)
	}
}

// checkAttachedLocked fails once the session has been removed from its registry
func (s *Session) checkAttachedLocked() error {
	if s.detached {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, s.name)
	}
	return nil
}

// detach stops all further use and persistence and deletes what was stored
func (s *Session) detach(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detached = true
	if s.persister == nil {
		return nil
	}
	return s.persister.Delete(ctx, s.name)
}

// sortByLatestReview orders PRs oldest review first; ties fall back to id
func sortByLatestReview(prs []model.PR) {
	slices.SortFunc(prs, func(a, b model.PR) int {
		if c := a.LatestReviewTime().Compare(b.LatestReviewTime()); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
