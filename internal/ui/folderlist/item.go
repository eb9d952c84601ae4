package folderlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/theme"
)

// FolderItem wraps a model.Folder so it can be used in a bubbles/list.
type FolderItem struct {
	Folder model.Folder
}

// FilterValue returns the string used for fuzzy filtering.
func (i FolderItem) FilterValue() string { return i.Folder.Name }

// ItemDelegate implements list.ItemDelegate for rendering folder rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single folder line: name, lock badge, todo count, and
// a truncated description.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(FolderItem)
	if !ok {
		return
	}
	f := fi.Folder

	badge := " "
	if f.Locked {
		badge = theme.LockedBadgeStyle.Render("🔒")
	}

	count := fmt.Sprintf("%d todos", f.TodoCount)
	if f.TodoCount == 1 {
		count = "1 todo"
	}

	line := fmt.Sprintf("%s %s  %s", badge, f.Name, theme.HelpStyle.Render(count))
	if f.Description != "" {
		line += theme.HelpStyle.Render("  " + truncate(f.Description, 40))
	}

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}

// truncate shortens s to at most n runes with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
