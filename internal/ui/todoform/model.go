package todoform

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/theme"
)

// TodoSubmitMsg is dispatched when the create-todo form is submitted.
type TodoSubmitMsg struct {
	Request api.CreateTodoRequest
}

// TodoFormCancelMsg is dispatched when the user cancels the form.
type TodoFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	dueDate     string
	priority    string
	folderID    int64
}

// Model is the Bubble Tea model for the create-todo form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	folders []model.Folder
	width   int
	height  int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		width:  width,
		height: height,
	}
}

// SetFolders sets the folders available in the form's folder selector.
func (m *Model) SetFolders(folders []model.Folder) {
	m.folders = folders
}

// Start initializes the form for creating a todo. When the form is
// opened from inside a folder, that folder is preselected.
func (m *Model) Start(folderID int64) tea.Cmd {
	*m.fb = formBindings{priority: model.PriorityMedium, folderID: folderID}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	// The form is consumed on completion so later messages cannot
	// re-emit the submit.
	if m.form.State == huh.StateCompleted {
		submit := m.handleSubmit()
		m.form = nil
		return m, submit
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("New Todo")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("Title is required")
				}
				return nil
			}),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
	}
	if folderField := m.folderField(); folderField != nil {
		fields = append(fields, folderField)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) folderField() huh.Field {
	if len(m.folders) == 0 {
		return nil
	}
	opts := make([]huh.Option[int64], len(m.folders))
	for i, f := range m.folders {
		opts[i] = huh.NewOption(f.Name, f.ID)
	}
	return huh.NewSelect[int64]().
		Title("Folder").
		Options(opts...).
		Value(&m.fb.folderID)
}

func (m Model) handleSubmit() tea.Cmd {
	req := api.CreateTodoRequest{
		FolderID:    m.fb.folderID,
		Title:       strings.TrimSpace(m.fb.title),
		Description: m.fb.description,
		DueDate:     strings.TrimSpace(m.fb.dueDate),
		Priority:    m.fb.priority,
	}
	return func() tea.Msg {
		return TodoSubmitMsg{Request: req}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return errors.New("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
