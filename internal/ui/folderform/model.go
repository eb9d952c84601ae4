package folderform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/theme"
)

// FolderSubmitMsg is dispatched when the create-folder form is submitted.
type FolderSubmitMsg struct {
	Request api.CreateFolderRequest
}

// FolderFormCancelMsg is dispatched when the user cancels the form.
type FolderFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	description string
	locked      bool
	password    string
}

// Model is the Bubble Tea model for the create-folder form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new folder form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for creating a new folder.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the folder form.
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
		return m, func() tea.Msg { return FolderFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the folder form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("New Folder")

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
	fb := m.fb
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Folder name").
				Value(&fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("Name is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&fb.description),
			huh.NewConfirm().
				Title("Password-protect this folder?").
				Affirmative("Yes").
				Negative("No").
				Value(&fb.locked),
			huh.NewInput().
				Title("Password").
				Description("Only used when the folder is protected").
				EchoMode(huh.EchoModePassword).
				Value(&fb.password).
				Validate(func(s string) error {
					if fb.locked && s == "" {
						return errors.New("Password is required for a locked folder")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	req := api.CreateFolderRequest{
		Name:        strings.TrimSpace(m.fb.name),
		Description: m.fb.description,
		Locked:      m.fb.locked,
	}
	// The password is sent only for locked folders and never kept.
	if m.fb.locked {
		req.Password = m.fb.password
	}
	return func() tea.Msg {
		return FolderSubmitMsg{Request: req}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
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
