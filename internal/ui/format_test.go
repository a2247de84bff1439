package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/testutil"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		desc   string
		text   string
		maxLen int
		want   string
	}{
		{desc: "fits", text: "Fix bug", maxLen: 10, want: "Fix bug"},
		{desc: "exact", text: "Fix bug", maxLen: 7, want: "Fix bug"},
		{desc: "ellipsis", text: "Refactor everything", maxLen: 10, want: "Refacto..."},
		{desc: "zero", text: "Fix bug", maxLen: 0, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, Truncate(tc.text, tc.maxLen))
		})
	}
}

func TestFormatReviewTime(t *testing.T) {
	assert.Equal(t, "-", FormatReviewTime(model.NullTime{}))

	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, ts.Local().Format(Display.TimeFormat), FormatReviewTime(model.NewNullTime(ts)))
}

func TestFormatReviewers(t *testing.T) {
	pr := model.PR{Reviews: []model.Review{
		{Author: model.Author{Login: "bob"}},
		{Author: model.Author{Login: "carol"}},
		{Author: model.Author{Login: "bob"}},
	}}
	assert.Equal(t, "bob, carol", FormatReviewers(pr))
	assert.Empty(t, FormatReviewers(model.PR{}))
}

func TestRenderPRTable(t *testing.T) {
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	prs := []model.PR{
		testutil.NewPR("1", "Fix bug", "org/r1", ts),
		testutil.NewPR("2", "Add feature", "org/r2", ts.Add(time.Hour)),
	}

	out := RenderPRTable(prs)
	assert.Contains(t, out, "Latest review")
	assert.Contains(t, out, "Fix bug")
	assert.Contains(t, out, "org/r2")
	assert.Less(t, strings.Index(out, "Fix bug"), strings.Index(out, "Add feature"))

	assert.Contains(t, RenderPRTable(nil), "No pull requests")
}

func TestRenderPRTree(t *testing.T) {
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	prs := []model.PR{
		testutil.NewPR("1", "Fix bug", "org/r1", ts),
		testutil.NewPR("2", "Bump deps", "org/r2", ts),
		testutil.NewPR("3", "Add feature", "org/r1", ts),
	}

	out := RenderPRTree("Unacknowledged", prs, false)
	assert.Contains(t, out, "Unacknowledged (3)")
	// Repositories appear once, in first-seen order
	assert.Equal(t, 1, strings.Count(out, "org/r1"))
	assert.Less(t, strings.Index(out, "org/r1"), strings.Index(out, "org/r2"))
	assert.Contains(t, out, "Add feature")

	assert.Contains(t, RenderPRTree("Acknowledged", nil, true), "No pull requests")
}

func TestEncode(t *testing.T) {
	pr := testutil.NewPR("42", "Fix bug", "org/r1", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, []model.PR{pr}))
		assert.Contains(t, buf.String(), `"id": "42"`)
		assert.Contains(t, buf.String(), `"submittedAt": "2024-01-02T10:00:00Z"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatYAML, []model.PR{pr}))
		assert.Contains(t, buf.String(), "title: Fix bug")
		assert.Contains(t, buf.String(), "repository: org/r1")
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatTOML, map[string]any{"author": "alice"}))
		assert.Contains(t, buf.String(), "author")
		assert.Contains(t, buf.String(), "alice")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, Encode(&bytes.Buffer{}, "xml", pr))
	})
}

func TestPrinters(t *testing.T) {
	var out, errOut bytes.Buffer
	origOut, origErr := Out, ErrOut
	Out, ErrOut = &out, &errOut
	t.Cleanup(func() { Out, ErrOut = origOut, origErr })

	Successf("acknowledged %s", "42")
	Warningf("skipped %d", 1)
	Error("boom")

	assert.Contains(t, out.String(), "acknowledged 42")
	assert.Contains(t, errOut.String(), "skipped 1")
	assert.Contains(t, errOut.String(), "boom")
}
