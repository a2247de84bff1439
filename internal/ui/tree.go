package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjulian5/ghprs/internal/model"
)

// RenderPRTree renders prs grouped by repository, keeping listing positions
// Example output:
//
//	Unacknowledged (3)
//	├─ org/r1
//	│  ├─ 0 Fix bug (2024-01-02 10:00)
//	│  ╰─ 2 Add feature (2024-01-03 09:00)
//	╰─ org/r2
//	   ╰─ 1 Bump deps (2024-01-02 11:00)
func RenderPRTree(title string, prs []model.PR, acknowledged bool) string {
	root := tree.Root(TreeRootStyle.Render(fmt.Sprintf("%s (%d)", title, len(prs))))
	if len(prs) == 0 {
		return root.String() + "\n" + Dim(Display.TreeIndent+"No pull requests")
	}

	var order []string
	groups := make(map[string]*tree.Tree)
	for i, pr := range prs {
		node, ok := groups[pr.Repository]
		if !ok {
			node = tree.Root(TreeBranchStyle.Render(pr.Repository))
			groups[pr.Repository] = node
			order = append(order, pr.Repository)
		}
		node.Child(formatPRForTree(i, pr, acknowledged))
	}

	for _, repo := range order {
		root.Child(groups[repo])
	}

	root.Enumerator(roundedEnumerator()).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(treeIndenter())

	return root.String()
}

func formatPRForTree(index int, pr model.PR, acknowledged bool) string {
	return fmt.Sprintf("%s %s %s",
		Highlight(fmt.Sprint(index)),
		AckStyle(acknowledged).Render(Truncate(pr.Title, Display.MaxTitleLength)),
		Dim("("+FormatReviewTime(pr.LatestReviewTime())+")"),
	)
}

func roundedEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "╰─ "
		}
		return "├─ "
	}
}

func treeIndenter() tree.Indenter {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "   "
		}
		return "│  "
	}
}
