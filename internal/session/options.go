package session

import (
	"io"
	"log/slog"
	"time"
)

const defaultMaxConcurrentFetches = 4

type settings struct {
	ttl                  time.Duration
	persister            Persister
	logger               *slog.Logger
	maxConcurrentFetches int
}

func newSettings(opts []Option) settings {
	s := settings{
		ttl:                  DefaultTTL,
		logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxConcurrentFetches: defaultMaxConcurrentFetches,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a Session or Registry
type Option func(*settings)

// WithTTL sets how long fetched PRs are trusted. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithPersister makes sessions restore and save their state
func WithPersister(p Persister) Option {
	return func(s *settings) {
		s.persister = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxConcurrentFetches bounds how many repositories are queried at once
func WithMaxConcurrentFetches(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxConcurrentFetches = n
		}
	}
}
