package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/ghprs/internal/model"
)

// Truncate truncates text to maxLen with an ellipsis if needed
// Uses lipgloss for proper ANSI-aware width handling
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	width := lipgloss.Width(text)
	if width <= maxLen {
		return text
	}

	if maxLen <= 3 {
		return lipgloss.NewStyle().MaxWidth(maxLen).Render(text)
	}

	return lipgloss.NewStyle().MaxWidth(maxLen-3).Render(text) + "..."
}

// FormatReviewTime renders a review time in the local time zone, or a dash when absent
func FormatReviewTime(t model.NullTime) string {
	if !t.Valid {
		return "-"
	}
	return t.Time.Local().Format(Display.TimeFormat)
}

// FormatReviewers lists the distinct reviewer logins of pr in review order
func FormatReviewers(pr model.PR) string {
	seen := make(map[string]bool)
	var logins []string
	for _, r := range pr.Reviews {
		if r.Author.Login == "" || seen[r.Author.Login] {
			continue
		}
		seen[r.Author.Login] = true
		logins = append(logins, r.Author.Login)
	}
	return strings.Join(logins, ", ")
}

// FormatPRFinderLine is the single-line form used by the fuzzy picker
func FormatPRFinderLine(index int, pr model.PR) string {
	return fmt.Sprintf("%d  %s  [%s]", index, pr.Title, pr.Repository)
}

// FormatPRPreview is the multi-line detail shown next to the fuzzy picker
func FormatPRPreview(pr model.PR) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", pr.Title)
	fmt.Fprintf(&b, "ID:            %s\n", pr.ID)
	fmt.Fprintf(&b, "Repository:    %s\n", pr.Repository)
	fmt.Fprintf(&b, "Latest review: %s\n", FormatReviewTime(pr.LatestReviewTime()))
	fmt.Fprintf(&b, "Reviews:       %d\n", len(pr.Reviews))
	if reviewers := FormatReviewers(pr); reviewers != "" {
		fmt.Fprintf(&b, "Reviewers:     %s\n", reviewers)
	}
	return b.String()
}

// titleWidth is the room left for the title column once the other columns are laid out
func titleWidth(prs []model.PR) int {
	repoWidth := len("Repository")
	for _, pr := range prs {
		repoWidth = max(repoWidth, lipgloss.Width(pr.Repository))
	}
	indexWidth := max(len("#"), len(fmt.Sprint(len(prs))))
	timeWidth := max(len("Latest review"), len(Display.TimeFormat))

	// Two cells of padding plus one border per column, plus the outer border
	fixed := indexWidth + repoWidth + timeWidth + 4*3 + 1
	width := GetTerminalWidth() - fixed
	return max(width, Display.MinTitleLength)
}
