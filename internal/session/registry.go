package session

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/bjulian5/ghprs/internal/model"
)

// Registry hands out named sessions, creating them on first use.
// The registry lock only guards the name map; each session has its own lock,
// so unrelated sessions never wait on each other's refresh.
type Registry struct {
	settings
	selection model.Selection
	fetcher   Fetcher

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a registry whose sessions all use selection and fetcher
func NewRegistry(selection model.Selection, fetcher Fetcher, opts ...Option) *Registry {
	return &Registry{
		settings:  newSettings(opts),
		selection: selection,
		fetcher:   fetcher,
		sessions:  make(map[string]*Session),
	}
}

// GetOrCreate returns the session called name, restoring it from persistence
// or creating it empty when it is not loaded yet.
func (r *Registry) GetOrCreate(ctx context.Context, name string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[name]; ok {
		return s
	}

	s := openSession(ctx, name, r.selection, r.fetcher, r.settings)
	r.sessions[name] = s
	r.logger.Info("created session", "session", name)
	return s
}

// Remove drops the session called name, including its persisted state
func (r *Registry) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	s, ok := r.sessions[name]
	delete(r.sessions, name)
	r.mu.Unlock()

	// detach waits for an in-flight refresh, so it runs outside the registry lock
	if ok {
		if err := s.detach(ctx); err != nil {
			r.logger.Warn("failed to delete session state", "session", name, "error", err)
		}
		r.logger.Info("removed session", "session", name)
		return nil
	}

	// Not loaded yet, but it may still exist in storage
	if r.persister != nil {
		state, err := r.persister.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to look up session %s: %w", name, err)
		}
		if state != nil {
			if err := r.persister.Delete(ctx, name); err != nil {
				return fmt.Errorf("failed to delete session %s: %w", name, err)
			}
			r.logger.Info("removed session", "session", name)
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrSessionNotFound, name)
}

// Names returns the loaded session names in sorted order
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Sorted(maps.Keys(r.sessions))
}
