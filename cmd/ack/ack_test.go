package ack

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/session"
	"github.com/bjulian5/ghprs/internal/testutil"
	"github.com/bjulian5/ghprs/internal/ui"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = orig })
	return &buf
}

func TestAck(t *testing.T) {
	now := time.Now()
	prs := []model.PR{
		testutil.NewPR("old", "Older review", "org/r1", now.Add(-time.Hour)),
		testutil.NewPR("new", "Newer review", "org/r2", now),
	}

	testCases := []struct {
		desc         string
		id           string
		index        int
		expectAcked  []string
		expectOutput []string
		expectError  string
	}{
		{
			desc:         "by index",
			index:        1,
			expectAcked:  []string{"new"},
			expectOutput: []string{`Acknowledged "Newer review" (org/r2)`, "Now", "Older review"},
		},
		{
			desc:         "by id",
			id:           "old",
			index:        -1,
			expectAcked:  []string{"old"},
			expectOutput: []string{"Acknowledged old", "Newer review"},
		},
		{
			desc:        "index out of range",
			index:       5,
			expectError: "invalid index 5",
		},
		{
			desc:        "unknown id",
			id:          "ghost",
			index:       -1,
			expectError: "pull request ghost is not tracked",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ctx := context.Background()
			out := captureOutput(t)

			fetcher := &testutil.MockFetcher{}
			fetcher.On("CheckAuth", mock.Anything).Return(nil)
			fetcher.On("ListPRs", mock.Anything, "org/r1", "alice").Return(prs[:1], nil)
			fetcher.On("ListPRs", mock.Anything, "org/r2", "alice").Return(prs[1:], nil)

			tracker := session.New("default", model.Selection{
				Author:       "alice",
				Repositories: []string{"org/r1", "org/r2"},
			}, fetcher)

			c := &Command{ID: tc.id, Index: tc.index, Tracker: tracker}
			err := c.Run(ctx)

			if tc.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError)
				return
			}
			require.NoError(t, err)

			acked, err := tracker.Acknowledged(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expectAcked, testutil.IDs(acked))
			for _, want := range tc.expectOutput {
				assert.Contains(t, out.String(), want)
			}
			// Every listing after the first came from the cache
			fetcher.AssertNumberOfCalls(t, "ListPRs", 2)
		})
	}
}

func TestAck_NothingToAcknowledge(t *testing.T) {
	out := captureOutput(t)

	fetcher := &testutil.MockFetcher{}
	fetcher.On("CheckAuth", mock.Anything).Return(nil)
	fetcher.On("ListPRs", mock.Anything, "org/r1", "alice").Return([]model.PR{}, nil)
	tracker := session.New("default", model.Selection{Author: "alice", Repositories: []string{"org/r1"}}, fetcher)

	c := &Command{Index: -1, Tracker: tracker}
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "No unacknowledged pull requests")
}
