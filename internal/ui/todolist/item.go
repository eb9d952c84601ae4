package todolist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list.
type TodoItem struct {
	Todo model.Todo
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// ItemDelegate implements list.ItemDelegate for rendering todo rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single todo line: completion mark, priority, title, and
// due date.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoItem)
	if !ok {
		return
	}
	t := ti.Todo

	mark := "○"
	if t.Completed {
		mark = "✓"
	}

	priority := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))

	title := t.Title
	if t.Completed {
		title = theme.CompletedStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", mark, priority, title)
	if t.DueDate != "" {
		line += theme.HelpStyle.Render("  due " + t.DueDate)
	}

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}

// priorityLabel returns the fixed-width display label for a priority.
func priorityLabel(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "[H]"
	case model.PriorityMedium:
		return "[M]"
	case model.PriorityLow:
		return "[L]"
	default:
		return "[ ]"
	}
}
