package common

import (
	"errors"
	"fmt"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/ui"
)

// ErrNoSelection is returned when the picker is dismissed without choosing a PR
var ErrNoSelection = errors.New("no pull request selected")

// NoIndex is the --index default meaning "not given"
const NoIndex = -1

// ResolvePR returns the id an ack/unack targets: id itself when given, the PR at index in
// prs when index is set, otherwise whatever the user picks interactively.
func ResolvePR(prs []model.PR, id string, index int) (string, error) {
	if id != "" {
		return id, nil
	}

	if index != NoIndex {
		if index < 0 || index >= len(prs) {
			return "", fmt.Errorf("invalid index %d: %d pull requests listed", index, len(prs))
		}
		return prs[index].ID, nil
	}

	if len(prs) == 0 {
		return "", fmt.Errorf("nothing to select: %w", ErrNoSelection)
	}
	if !ui.IsInteractive() {
		return "", fmt.Errorf("not running in a terminal: pass --id or --index")
	}

	pr, err := ui.SelectPR(prs)
	if err != nil {
		return "", fmt.Errorf("failed to select pull request: %w", err)
	}
	if pr == nil {
		return "", ErrNoSelection
	}
	return pr.ID, nil
}
