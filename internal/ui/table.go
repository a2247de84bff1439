package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bjulian5/ghprs/internal/model"
)

// NewPRTable creates a new table with the ghprs styling defaults
func NewPRTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		BorderColumn(true).
		StyleFunc(defaultTableStyleFunc)
}

// defaultTableStyleFunc provides default styling for table cells
func defaultTableStyleFunc(row, col int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return TableHeaderStyle
	case row%2 == 0:
		return TableCellStyle
	default:
		return TableRowAltStyle
	}
}

// RenderPRTable renders prs with their position in the listing, which ack/unack --index refers to.
//
//	┌───┬──────────┬────────────┬──────────────────┐
//	│ # │ Title    │ Repository │ Latest review    │
//	├───┼──────────┼────────────┼──────────────────┤
//	│ 0 │ Fix bug  │ org/r1     │ 2024-01-02 10:00 │
//	└───┴──────────┴────────────┴──────────────────┘
func RenderPRTable(prs []model.PR) string {
	if len(prs) == 0 {
		return Dim("No pull requests")
	}

	maxTitle := titleWidth(prs)
	t := NewPRTable().Headers("#", "Title", "Repository", "Latest review")
	for i, pr := range prs {
		t.Row(
			fmt.Sprint(i),
			Truncate(pr.Title, maxTitle),
			pr.Repository,
			FormatReviewTime(pr.LatestReviewTime()),
		)
	}
	return t.String()
}
