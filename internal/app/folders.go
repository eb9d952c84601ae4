package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/model"
	appsync "taskmaster-tui/internal/sync"
	"taskmaster-tui/internal/workflow"
)

// authResultMsg reports a login or registration attempt.
type authResultMsg struct {
	email      string
	registered bool
	err        error
}

// folderOpenedMsg carries the todos of a folder the user opened.
type folderOpenedMsg struct {
	folder model.Folder
	todos  []model.Todo
	err    error
}

// folderCreatedMsg reports a folder creation attempt.
type folderCreatedMsg struct {
	folder model.Folder
	err    error
}

// challengeSettledMsg reports the outcome of a submitted folder password.
type challengeSettledMsg struct {
	result *workflow.AccessResult
	err    error
}

// cmdTimeout bounds every user-initiated backend call.
const cmdTimeout = 30 * time.Second

// login exchanges credentials for a token and persists the session.
func (m Model) login(email, password string) tea.Cmd {
	client := m.client
	sess := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		resp, err := client.Login(ctx, email, password)
		if err != nil {
			return authResultMsg{err: err}
		}
		if resp.Email == "" {
			resp.Email = email
		}
		if err := sess.Save(resp.Token, resp.Email); err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{email: resp.Email}
	}
}

// register creates an account and persists the returned session.
func (m Model) register(req api.RegisterRequest) tea.Cmd {
	client := m.client
	sess := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		resp, err := client.Register(ctx, req)
		if err != nil {
			return authResultMsg{registered: true, err: err}
		}
		if resp.Email == "" {
			resp.Email = req.Email
		}
		if err := sess.Save(resp.Token, resp.Email); err != nil {
			return authResultMsg{registered: true, err: err}
		}
		return authResultMsg{email: resp.Email, registered: true}
	}
}

// handleAuthResult finishes a login or registration: on success the user
// lands on the view the route guard recorded, and background refresh
// starts.
func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		fallback := "Login failed. Please try again."
		if msg.registered {
			fallback = "Registration failed. Please try again."
		}
		return m, m.notify(model.SeverityError, api.Message(msg.err, fallback))
	}

	m.email = msg.email
	m.previousView = ViewFolders
	m.currentView = m.requestedView
	m.requestedView = ViewFolders

	welcome := "Welcome back!"
	if msg.registered {
		welcome = "Account created. Welcome!"
	}
	cmds := []tea.Cmd{
		m.refresher.Start(),
		m.notify(model.SeveritySuccess, welcome),
	}

	// Resuming onto a form view the guard recorded means the form was
	// never opened; open it now.
	switch m.currentView {
	case ViewFolderCreate:
		cmds = append(cmds, m.folderForm.Start())
	case ViewTodoCreate:
		m.todoForm.SetFolders(m.folders)
		cmds = append(cmds, m.todoForm.Start(m.todoList.Folder().ID))
	}
	return m, tea.Batch(cmds...)
}

// handleRefreshResult applies a background folder refresh.
func (m Model) handleRefreshResult(msg appsync.RefreshResultMsg) (tea.Model, tea.Cmd) {
	listen := m.refresher.WaitForNextResult()

	if msg.Err != nil {
		if cmd, handled := m.checkSessionErr(msg.Err); handled {
			return m, cmd
		}
		return m, tea.Batch(listen, m.notify(model.SeverityError,
			api.Message(msg.Err, "Failed to fetch folders.")))
	}

	m.folders = msg.Folders
	m.todoForm.SetFolders(msg.Folders)
	return m, tea.Batch(
		listen,
		m.folderList.SetFolders(msg.Folders),
		m.cacheFolders(msg.Folders),
	)
}

// cacheFolders persists the folder list off the UI goroutine.
func (m Model) cacheFolders(folders []model.Folder) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		_ = c.ReplaceFolders(ctx, folders)
		return nil
	}
}

// openFolder routes an unlocked folder straight to its todos and a
// locked folder through the password challenge.
func (m Model) openFolder(folder model.Folder) (tea.Model, tea.Cmd) {
	m.todoList.SetFolder(folder)

	if folder.Locked {
		return m.beginChallenge(
			workflow.ListTodosAction(folder.ID),
			folder.Name, "view its todos")
	}
	return m, m.fetchTodos(folder, "")
}

// beginChallenge opens the password dialog for a pending action.
func (m Model) beginChallenge(action workflow.PendingAction, folderName, actionLabel string) (Model, tea.Cmd) {
	if err := m.access.Begin(action); err != nil {
		return m, m.notify(model.SeverityWarning,
			"Another password prompt is already open.")
	}
	m.previousView = m.currentView
	m.currentView = ViewChallenge
	return m, m.prompt.Start(folderName, actionLabel)
}

// fetchTodos loads a folder's contents.
func (m Model) fetchTodos(folder model.Folder, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		todos, err := client.ListFolderTodos(ctx, folder.ID, password)
		return folderOpenedMsg{folder: folder, todos: todos, err: err}
	}
}

// handleFolderOpened shows the folder's todos or reports why it could
// not be opened.
func (m Model) handleFolderOpened(msg folderOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if cmd, handled := m.checkSessionErr(msg.err); handled {
			return m, cmd
		}
		// The cached list said unlocked but the backend disagrees.
		if api.IsFolderLocked(msg.err) {
			return m.beginChallenge(
				workflow.ListTodosAction(msg.folder.ID),
				msg.folder.Name, "view its todos")
		}
		if api.ErrorKind(msg.err) == api.KindNotFound {
			m.refresher.RefreshNow()
			return m, tea.Batch(
				m.clearCurrentFolderCache(),
				m.notify(model.SeverityWarning, "That folder no longer exists."),
			)
		}
		return m, m.notify(model.SeverityError,
			api.Message(msg.err, "Failed to open folder."))
	}

	m.previousView = m.currentView
	m.currentView = ViewTodos
	m.todoList.SetFolder(msg.folder)
	return m, tea.Batch(
		m.todoList.SetTodos(msg.todos),
		m.cacheCurrentFolder(msg.folder, msg.todos),
	)
}

// cacheCurrentFolder persists the opened folder and its todos.
func (m Model) cacheCurrentFolder(folder model.Folder, todos []model.Todo) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		_ = c.SetCurrentFolder(ctx, folder, todos)
		return nil
	}
}

// clearCurrentFolderCache drops the cached folder after it disappeared
// on the backend.
func (m Model) clearCurrentFolderCache() tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		_ = c.ClearCurrentFolder(ctx)
		return nil
	}
}

// startFolderForm opens the create-folder form behind the route guard.
func (m Model) startFolderForm() (Model, tea.Cmd) {
	next, denied := m.guardNavigate(ViewFolderCreate)
	if denied != nil {
		return next, denied
	}
	return next, next.folderForm.Start()
}

// createFolder issues the folder creation call.
func (m Model) createFolder(req api.CreateFolderRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		folder, err := client.CreateFolder(ctx, req)
		return folderCreatedMsg{folder: folder, err: err}
	}
}

// handleFolderCreated returns to the grid and refreshes it.
func (m Model) handleFolderCreated(msg folderCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if cmd, handled := m.checkSessionErr(msg.err); handled {
			return m, cmd
		}
		// Validation messages surface verbatim; the form stays open so
		// the user can correct and resubmit.
		return m, tea.Batch(
			m.folderForm.Start(),
			m.notify(model.SeverityError,
				api.Message(msg.err, "Failed to create folder.")),
		)
	}

	m.currentView = ViewFolders
	m.refresher.RefreshNow()
	return m, m.notify(model.SeveritySuccess,
		"Folder \""+msg.folder.Name+"\" created.")
}

// submitChallenge verifies the password and re-issues the gated action.
func (m Model) submitChallenge(password string) tea.Cmd {
	access := m.access
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		result, err := access.Submit(ctx, password)
		return challengeSettledMsg{result: result, err: err}
	}
}

// handleChallengeSettled applies the outcome of a password challenge.
func (m Model) handleChallengeSettled(msg challengeSettledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if cmd, handled := m.checkSessionErr(msg.err); handled {
			return m, cmd
		}

		// Verification failed: the dialog stays open for a retry.
		if m.access.State() == workflow.StateFailed {
			m.prompt.SetFailure(m.access.FailureMessage())
			return m, nil
		}

		// Verification passed but the re-issued action failed; the
		// challenge is consumed and the dialog closes.
		m.currentView = m.previousView
		return m, m.notify(model.SeverityError,
			api.Message(msg.err, "The requested action failed."))
	}

	switch msg.result.Action.Kind {
	case workflow.ActionListTodos:
		folder := m.todoList.Folder()
		m.currentView = ViewTodos
		return m, tea.Batch(
			m.todoList.SetTodos(msg.result.Todos),
			m.cacheCurrentFolder(folder, msg.result.Todos),
		)

	case workflow.ActionDeleteTodo:
		m.currentView = m.previousView
		m.todoList.Remove(msg.result.Action.TodoID)
		m.toggle.Forget(msg.result.Action.TodoID)
		m.refresher.RefreshNow()
		return m, m.notify(model.SeveritySuccess, "Todo deleted.")

	case workflow.ActionCreateTodo:
		m.currentView = m.previousView
		m.refresher.RefreshNow()
		cmds := []tea.Cmd{
			m.notify(model.SeveritySuccess, "Todo created."),
		}
		if created := msg.result.Created; created != nil &&
			created.FolderID == m.todoList.Folder().ID {
			cmds = append(cmds, m.todoList.Append(*created))
		}
		return m, tea.Batch(cmds...)
	}

	m.currentView = m.previousView
	return m, nil
}
