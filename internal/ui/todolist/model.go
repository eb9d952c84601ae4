package todolist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmaster-tui/internal/keys"
	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/theme"
)

// Model is the todo list view for the currently open folder.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	folder model.Folder
	width  int
	height int
}

// New creates a new todo list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetFolder sets the folder whose todos are displayed.
func (m *Model) SetFolder(folder model.Folder) {
	m.folder = folder
	m.list.Title = folder.Name
}

// Folder returns the folder currently displayed.
func (m Model) Folder() model.Folder {
	return m.folder
}

// SetTodos replaces the displayed todos.
func (m *Model) SetTodos(todos []model.Todo) tea.Cmd {
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = TodoItem{Todo: t}
	}
	return m.list.SetItems(items)
}

// Todos returns the todos currently displayed.
func (m Model) Todos() []model.Todo {
	items := m.list.Items()
	todos := make([]model.Todo, 0, len(items))
	for _, item := range items {
		if ti, ok := item.(TodoItem); ok {
			todos = append(todos, ti.Todo)
		}
	}
	return todos
}

// SelectedTodo returns the todo under the cursor, if any.
func (m Model) SelectedTodo() (model.Todo, bool) {
	item, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return item.Todo, true
}

// SetCompleted flips the displayed completion state of one todo. The
// optimistic workflow calls it twice on failure: once to apply, once to
// roll back.
func (m *Model) SetCompleted(todoID int64, completed bool) tea.Cmd {
	items := m.list.Items()
	for i, item := range items {
		ti, ok := item.(TodoItem)
		if !ok || ti.Todo.ID != todoID {
			continue
		}
		ti.Todo.Completed = completed
		return m.list.SetItem(i, ti)
	}
	return nil
}

// Remove deletes one todo from the displayed list.
func (m *Model) Remove(todoID int64) {
	for i, item := range m.list.Items() {
		if ti, ok := item.(TodoItem); ok && ti.Todo.ID == todoID {
			m.list.RemoveItem(i)
			return
		}
	}
}

// Append adds a newly created todo to the end of the displayed list.
func (m *Model) Append(todo model.Todo) tea.Cmd {
	return m.list.InsertItem(len(m.list.Items()), TodoItem{Todo: todo})
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the todo list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when the folder has no todos.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No todos in " + m.folder.Name + ".\n\nPress n to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
