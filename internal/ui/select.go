package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/bjulian5/ghprs/internal/model"
)

func init() {
	// Force lipgloss to detect the terminal before the fuzzy finder takes it over,
	// otherwise ANSI queries leak into the finder input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// SelectPR presents a fuzzy finder over prs.
// Returns the selected PR, or nil if the user cancelled the selection.
func SelectPR(prs []model.PR) (*model.PR, error) {
	if len(prs) == 0 {
		return nil, nil
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		prs,
		func(i int) string {
			return FormatPRFinderLine(i, prs[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return FormatPRPreview(prs[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, err
	}

	return &prs[idx], nil
}
