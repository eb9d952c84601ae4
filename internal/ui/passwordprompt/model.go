package passwordprompt

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmaster-tui/internal/theme"
)

// SubmitMsg is dispatched when the user submits a password.
type SubmitMsg struct {
	Password string
}

// CancelMsg is dispatched when the user dismisses the dialog.
type CancelMsg struct{}

// Model is the password challenge dialog shown before an action on a
// locked folder.
type Model struct {
	input      textinput.Model
	folderName string
	actionName string
	failure    string
	verifying  bool
	width      int
	height     int
}

// New creates a new password prompt model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Start opens the dialog for an action on the named folder. The input is
// cleared so a password from a previous challenge never carries over.
func (m *Model) Start(folderName, actionName string) tea.Cmd {
	m.folderName = folderName
	m.actionName = actionName
	m.failure = ""
	m.verifying = false
	m.input.Reset()
	return m.input.Focus()
}

// SetFailure shows a verification failure and re-enables input so the
// user can retry.
func (m *Model) SetFailure(msg string) {
	m.failure = msg
	m.verifying = false
	m.input.Reset()
}

// SetVerifying marks the dialog as waiting on the backend.
func (m *Model) SetVerifying() {
	m.verifying = true
	m.failure = ""
}

// Update handles messages for the password dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if m.verifying {
				return m, nil
			}
			password := m.input.Value()
			if password == "" {
				return m, nil
			}
			return m, func() tea.Msg { return SubmitMsg{Password: password} }
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	if m.verifying {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the dialog centered in the available space.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("🔒 " + m.folderName)

	prompt := "Enter the folder password to " + m.actionName + "."

	status := theme.HelpStyle.Render("enter submit · esc cancel")
	if m.verifying {
		status = theme.HelpStyle.Render("Verifying...")
	}

	lines := []string{title, "", prompt, "", m.input.View()}
	if m.failure != "" {
		failStyle := lipgloss.NewStyle().Foreground(theme.ColorRed)
		lines = append(lines, "", failStyle.Render(m.failure))
	}
	lines = append(lines, "", status)

	dialog := theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center, dialog)
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
