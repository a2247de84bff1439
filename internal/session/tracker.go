package session

import (
	"context"
	"errors"

	"github.com/bjulian5/ghprs/internal/model"
)

var (
	// ErrNotFound is returned when acknowledging a PR the session does not track
	ErrNotFound = errors.New("pull request not found")

	// ErrSessionNotFound is returned when removing a session that does not exist,
	// or when using a session after it was removed
	ErrSessionNotFound = errors.New("session not found")

	// ErrRefreshFailed wraps a refresh that could not fetch anything, leaving state untouched
	ErrRefreshFailed = errors.New("refresh failed")
)

// Tracker is the query surface shared by local sessions and remote servers
type Tracker interface {
	Unacknowledged(ctx context.Context) ([]model.PR, error)
	Acknowledged(ctx context.Context) ([]model.PR, error)
	Acknowledge(ctx context.Context, id string) error
	Unacknowledge(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	ForceNextRefresh(ctx context.Context) error
}

// Fetcher retrieves pull requests from GitHub
type Fetcher interface {
	// CheckAuth fails when no fetch can be attempted at all
	CheckAuth(ctx context.Context) error
	// ListPRs returns the open PRs of one repository opened by author
	ListPRs(ctx context.Context, repository, author string) ([]model.PR, error)
}

// Persister loads and saves session state keyed by session name
type Persister interface {
	// Load returns nil state when nothing is stored under name
	Load(ctx context.Context, name string) (*model.SessionState, error)
	Save(ctx context.Context, name string, state model.SessionState) error
	Delete(ctx context.Context, name string) error
}
