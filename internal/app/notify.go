package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/theme"
)

// notificationDismissMsg fires when a notification's display time is up.
type notificationDismissMsg struct {
	id string
}

// notify replaces the active notification and schedules its dismissal.
// Each notification carries a unique id so the dismiss timer of an
// earlier message can never clear a later one.
func (m *Model) notify(severity model.Severity, message string) tea.Cmd {
	n := model.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}
	m.notification = &n

	return tea.Tick(model.NotificationTTL, func(time.Time) tea.Msg {
		return notificationDismissMsg{id: n.ID}
	})
}

// statusLine renders the active notification, falling back to key hints.
func (m Model) statusLine() string {
	if m.notification != nil {
		return theme.SeverityStyle(m.notification.Severity).
			Render(m.notification.Message)
	}
	return m.keyHints()
}

// keyHints returns the shortcut summary for the active view.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewAuth:
		return "tab next field · enter submit · ctrl+t login/register · ctrl+c quit"
	case ViewFolders:
		return "enter open · n new folder · r refresh · ctrl+l log out · ? help · q quit"
	case ViewTodos:
		return "x toggle · n new todo · d delete · esc back · ? help"
	case ViewFolderCreate, ViewTodoCreate:
		return "tab next field · enter submit · esc cancel"
	case ViewChallenge:
		return "enter submit · esc cancel"
	case ViewHelp:
		return "? close help"
	default:
		return ""
	}
}
