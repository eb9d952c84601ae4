package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/model"
)

// sessionRestoredMsg carries the persisted session and cached folder
// state loaded at startup.
type sessionRestoredMsg struct {
	session model.Session
	folders []model.Folder
	current *model.Folder
	todos   []model.Todo
	err     error
}

// logoutDoneMsg reports that the session and local cache were cleared.
type logoutDoneMsg struct {
	// forced means the backend rejected the token, as opposed to the
	// user logging out deliberately.
	forced  bool
	message string
	err     error
}

// restoreSession reads the keyring and cache so a returning user lands
// on the folder grid without re-entering credentials.
func (m Model) restoreSession() tea.Cmd {
	sess := m.session
	c := m.cache
	return func() tea.Msg {
		msg := sessionRestoredMsg{}
		msg.session, msg.err = sess.Read()
		if msg.err != nil || !msg.session.Valid() {
			return msg
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Cache reads are best effort; a failure just means an empty
		// grid until the first refresh lands.
		msg.folders, _ = c.Folders(ctx)
		msg.current, msg.todos, _ = c.CurrentFolder(ctx)
		return msg
	}
}

// handleSessionRestored routes to the folder grid when a session exists
// and to the auth view otherwise.
func (m Model) handleSessionRestored(msg sessionRestoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || !msg.session.Valid() {
		m.currentView = ViewAuth
		return m, m.authView.Start()
	}

	m.email = msg.session.Email
	m.currentView = ViewFolders
	m.folders = msg.folders

	cmds := []tea.Cmd{
		m.folderList.SetFolders(msg.folders),
		m.refresher.Start(),
	}
	if msg.current != nil {
		m.todoList.SetFolder(*msg.current)
		cmds = append(cmds, m.todoList.SetTodos(msg.todos))
	}
	return m, tea.Batch(cmds...)
}

// guardNavigate switches to a protected view only when a session exists.
// Without one the user is sent to the auth view and the requested view
// is remembered, so a successful login resumes where they were headed.
func (m Model) guardNavigate(target ViewState) (Model, tea.Cmd) {
	sess, err := m.session.Read()
	if err != nil || !sess.Valid() {
		m.requestedView = target
		m.currentView = ViewAuth
		return m, tea.Batch(
			m.authView.Start(),
			m.notify(model.SeverityWarning, "Please log in to continue."),
		)
	}

	m.previousView = m.currentView
	m.currentView = target
	return m, nil
}

// checkSessionErr intercepts invalid-token failures: the stored session
// is cleared and the user is bounced to the auth view. It returns true
// when err was handled this way.
func (m *Model) checkSessionErr(err error) (tea.Cmd, bool) {
	if !api.IsInvalidToken(err) {
		return nil, false
	}
	// Mid-session expiry resumes at the folder grid; anything deeper
	// (an open locked folder, a dialog) must be re-entered through its
	// own gate after the new login.
	m.requestedView = ViewFolders
	return m.forceLogout("Your session has expired. Please log in again."), true
}

// logout clears the session and cache on the user's request.
func (m Model) logout() tea.Cmd {
	m.refresher.Stop()
	sess := m.session
	return func() tea.Msg {
		return logoutDoneMsg{
			message: "Logged out.",
			err:     sess.Clear(),
		}
	}
}

// forceLogout clears the session after the backend rejected the token.
func (m Model) forceLogout(message string) tea.Cmd {
	m.refresher.Stop()
	sess := m.session
	return func() tea.Msg {
		return logoutDoneMsg{
			forced:  true,
			message: message,
			err:     sess.Clear(),
		}
	}
}

// handleLogoutDone resets all view state and shows the auth view.
func (m Model) handleLogoutDone(msg logoutDoneMsg) (tea.Model, tea.Cmd) {
	m.email = ""
	if !msg.forced {
		m.requestedView = ViewFolders
	}
	m.access.Cancel()
	m.currentView = ViewAuth

	cmds := []tea.Cmd{
		m.authView.Start(),
		m.folderList.SetFolders(nil),
		m.todoList.SetTodos(nil),
	}
	severity := model.SeverityInfo
	if msg.forced {
		severity = model.SeverityWarning
	}
	if msg.err != nil {
		cmds = append(cmds, m.notify(model.SeverityError,
			"Failed to clear local session data."))
	} else if msg.message != "" {
		cmds = append(cmds, m.notify(severity, msg.message))
	}
	return m, tea.Batch(cmds...)
}
