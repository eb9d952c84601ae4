package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/cache"
	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/session"
	appsync "taskmaster-tui/internal/sync"
	"taskmaster-tui/internal/ui"
	"taskmaster-tui/internal/ui/authform"
	"taskmaster-tui/internal/ui/folderform"
	"taskmaster-tui/internal/ui/folderlist"
	helpview "taskmaster-tui/internal/ui/help"
	"taskmaster-tui/internal/ui/passwordprompt"
	"taskmaster-tui/internal/ui/todoform"
	"taskmaster-tui/internal/ui/todolist"
	"taskmaster-tui/internal/workflow"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewFolders
	ViewTodos
	ViewFolderCreate
	ViewTodoCreate
	ViewChallenge
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// the session, and the folder/todo workflows.
type Model struct {
	currentView  ViewState
	previousView ViewState

	// requestedView is where the route guard sends the user after a
	// successful login when they were bounced to the auth view.
	requestedView ViewState

	layout ui.Layout
	keys   *Keys

	session   *session.Store
	client    *api.Client
	cache     *cache.Cache
	access    *workflow.FolderAccess
	toggle    *workflow.OptimisticToggle
	refresher *appsync.Refresher

	email string

	// folders mirrors the folder grid's contents for the todo form's
	// folder selector.
	folders []model.Folder

	authView   authform.Model
	folderList folderlist.Model
	todoList   todolist.Model
	folderForm folderform.Model
	todoForm   todoform.Model
	prompt     passwordprompt.Model
	helpView   helpview.Model

	notification *model.Notification
	ready        bool
}

// New creates the root application model.
func New(sess *session.Store, client *api.Client, c *cache.Cache, refreshInterval time.Duration) Model {
	keys := DefaultKeys()

	return Model{
		currentView:   ViewAuth,
		requestedView: ViewFolders,
		keys:          keys,
		session:       sess,
		client:        client,
		cache:         c,
		access:        workflow.NewFolderAccess(client),
		toggle:        workflow.NewOptimisticToggle(client),
		refresher:     appsync.New(client, refreshInterval),
		authView:      authform.New(80, 24),
		folderList:    folderlist.New(keys.KeyMap, 80, 24),
		todoList:      todolist.New(keys.KeyMap, 80, 24),
		folderForm:    folderform.New(80, 24),
		todoForm:      todoform.New(80, 24),
		prompt:        passwordprompt.New(80, 24),
		helpView:      helpview.New(keys.KeyMap, 80, 24),
	}
}

// Init restores the persisted session and cached folder state.
func (m Model) Init() tea.Cmd {
	return m.restoreSession()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.authView.SetSize(w, h)
		m.folderList.SetSize(w, h)
		m.todoList.SetSize(w, h)
		m.folderForm.SetSize(w, h)
		m.todoForm.SetSize(w, h)
		m.prompt.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can calculate layout.
		return m.updateActiveView(msg)

	case sessionRestoredMsg:
		return m.handleSessionRestored(msg)

	case authResultMsg:
		return m.handleAuthResult(msg)

	case appsync.RefreshResultMsg:
		return m.handleRefreshResult(msg)

	case folderlist.SelectedFolderMsg:
		return m.openFolder(msg.Folder)

	case folderOpenedMsg:
		return m.handleFolderOpened(msg)

	case folderform.FolderSubmitMsg:
		return m, m.createFolder(msg.Request)

	case folderform.FolderFormCancelMsg:
		m.currentView = ViewFolders
		return m, nil

	case folderCreatedMsg:
		return m.handleFolderCreated(msg)

	case todoform.TodoSubmitMsg:
		return m.submitNewTodo(msg.Request)

	case todoform.TodoFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case todoCreatedMsg:
		return m.handleTodoCreated(msg)

	case todoDeletedMsg:
		return m.handleTodoDeleted(msg)

	case toggleSettledMsg:
		return m.handleToggleSettled(msg)

	case passwordprompt.SubmitMsg:
		m.prompt.SetVerifying()
		return m, m.submitChallenge(msg.Password)

	case passwordprompt.CancelMsg:
		m.access.Cancel()
		m.currentView = m.previousView
		return m, nil

	case challengeSettledMsg:
		return m.handleChallengeSettled(msg)

	case authform.LoginSubmitMsg:
		return m, m.login(msg.Email, msg.Password)

	case authform.RegisterSubmitMsg:
		return m, m.register(msg.Request)

	case logoutDoneMsg:
		return m.handleLogoutDone(msg)

	case notificationDismissMsg:
		if m.notification != nil && m.notification.ID == msg.id {
			m.notification = nil
		}
		return m, nil

	case tea.KeyMsg:
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work outside of text input. Form
// views get every keystroke, so global bindings only apply on the list
// views and the help overlay.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.refresher.Stop()
		return true, m, tea.Quit
	}

	inListView := m.currentView == ViewFolders || m.currentView == ViewTodos
	if !inListView && m.currentView != ViewHelp {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewFolders {
			m.refresher.Stop()
			return true, m, tea.Quit
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case key.Matches(msg, m.keys.Back):
		switch m.currentView {
		case ViewTodos:
			m.currentView = ViewFolders
			return true, m, nil
		case ViewHelp:
			m.currentView = m.previousView
			return true, m, nil
		}

	case key.Matches(msg, m.keys.Refresh):
		if inListView {
			m.refresher.RefreshNow()
			return true, m, nil
		}

	case key.Matches(msg, m.keys.New):
		switch m.currentView {
		case ViewFolders:
			next, cmd := m.startFolderForm()
			return true, next, cmd
		case ViewTodos:
			next, cmd := m.startTodoForm()
			return true, next, cmd
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.currentView == ViewTodos {
			next, cmd := m.toggleSelectedTodo()
			return true, next, cmd
		}

	case key.Matches(msg, m.keys.Delete):
		if m.currentView == ViewTodos {
			next, cmd := m.deleteSelectedTodo()
			return true, next, cmd
		}

	case key.Matches(msg, m.keys.Logout):
		if inListView {
			return true, m, m.logout()
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewFolders:
		m.folderList, cmd = m.folderList.Update(msg)
	case ViewTodos:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewFolderCreate:
		m.folderForm, cmd = m.folderForm.Update(msg)
	case ViewTodoCreate:
		m.todoForm, cmd = m.todoForm.Update(msg)
	case ViewChallenge:
		m.prompt, cmd = m.prompt.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("TaskMaster", m.headerRight())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAuth:
		return m.authView.View()
	case ViewFolders:
		return m.folderList.View()
	case ViewTodos:
		return m.todoList.View()
	case ViewFolderCreate:
		return m.folderForm.View()
	case ViewTodoCreate:
		return m.todoForm.View()
	case ViewChallenge:
		return m.prompt.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerRight shows who is logged in.
func (m Model) headerRight() string {
	if m.email == "" {
		return "not logged in"
	}
	return m.email
}
