package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/bjulian5/ghprs/internal/model"
)

type MockFetcher struct {
	mock.Mock
}

// CheckAuth implements session.Fetcher.
func (m *MockFetcher) CheckAuth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ListPRs implements session.Fetcher.
func (m *MockFetcher) ListPRs(ctx context.Context, repository string, author string) ([]model.PR, error) {
	args := m.Called(ctx, repository, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PR), args.Error(1)
}

// MemoryPersister keeps session state in a map
type MemoryPersister struct {
	mu     sync.Mutex
	States map[string]model.SessionState
	Saves  int
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{States: make(map[string]model.SessionState)}
}

// Load implements session.Persister.
func (p *MemoryPersister) Load(ctx context.Context, name string) (*model.SessionState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.States[name]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// Save implements session.Persister.
func (p *MemoryPersister) Save(ctx context.Context, name string, state model.SessionState) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.States[name] = state
	p.Saves++
	return nil
}

// Delete implements session.Persister.
func (p *MemoryPersister) Delete(ctx context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.States, name)
	return nil
}
