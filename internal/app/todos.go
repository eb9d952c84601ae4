package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/workflow"
)

// todoCreatedMsg reports a direct (unchallenged) todo creation.
type todoCreatedMsg struct {
	todo model.Todo
	err  error
}

// todoDeletedMsg reports a direct (unchallenged) todo deletion.
type todoDeletedMsg struct {
	todoID int64
	err    error
}

// toggleSettledMsg reports how an optimistic completion toggle settled.
type toggleSettledMsg struct {
	result workflow.ToggleResult
}

// startTodoForm opens the create-todo form behind the route guard, with
// the current folder preselected.
func (m Model) startTodoForm() (Model, tea.Cmd) {
	next, denied := m.guardNavigate(ViewTodoCreate)
	if denied != nil {
		return next, denied
	}
	next.todoForm.SetFolders(next.folders)
	return next, next.todoForm.Start(next.todoList.Folder().ID)
}

// submitNewTodo creates the todo, going through the password challenge
// when the target is a locked folder other than the one already open.
func (m Model) submitNewTodo(req api.CreateTodoRequest) (tea.Model, tea.Cmd) {
	m.currentView = m.previousView

	target, known := m.folderByID(req.FolderID)
	if known && target.Locked && target.ID != m.todoList.Folder().ID {
		return m.beginChallenge(
			workflow.CreateTodoAction(req),
			target.Name, "add a todo to it")
	}

	return m, m.createTodo(req)
}

// folderByID looks a folder up in the last fetched folder list.
func (m Model) folderByID(id int64) (model.Folder, bool) {
	for _, f := range m.folders {
		if f.ID == id {
			return f, true
		}
	}
	return model.Folder{}, false
}

// createTodo issues the todo creation call.
func (m Model) createTodo(req api.CreateTodoRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		todo, err := client.CreateTodo(ctx, req)
		return todoCreatedMsg{todo: todo, err: err}
	}
}

// handleTodoCreated appends the new todo when its folder is on screen.
func (m Model) handleTodoCreated(msg todoCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if cmd, handled := m.checkSessionErr(msg.err); handled {
			return m, cmd
		}
		return m, m.notify(model.SeverityError,
			api.Message(msg.err, "Failed to create todo."))
	}

	m.refresher.RefreshNow()
	cmds := []tea.Cmd{
		m.notify(model.SeveritySuccess, "Todo created."),
	}
	if msg.todo.FolderID == m.todoList.Folder().ID {
		cmds = append(cmds, m.todoList.Append(msg.todo))
	}
	return m, tea.Batch(cmds...)
}

// toggleSelectedTodo flips the selected todo's completion optimistically:
// the list updates immediately and the backend call settles afterwards.
func (m Model) toggleSelectedTodo() (Model, tea.Cmd) {
	todo, ok := m.todoList.SelectedTodo()
	if !ok {
		return m, nil
	}

	mut := m.toggle.Begin(todo.ID, todo.Completed)
	return m, tea.Batch(
		m.todoList.SetCompleted(mut.TodoID, mut.Next),
		m.commitToggle(mut),
	)
}

// commitToggle sends the toggle to the backend.
func (m Model) commitToggle(mut workflow.Mutation) tea.Cmd {
	toggle := m.toggle
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		return toggleSettledMsg{result: toggle.Commit(ctx, mut)}
	}
}

// handleToggleSettled reconciles an optimistic toggle with the backend's
// answer. Stale results are dropped so the last toggle the user issued
// always wins.
func (m Model) handleToggleSettled(msg toggleSettledMsg) (tea.Model, tea.Cmd) {
	res := msg.result
	if res.Stale {
		return m, nil
	}

	if res.Rollback() {
		cmds := []tea.Cmd{
			m.todoList.SetCompleted(res.Mutation.TodoID, res.Mutation.Prev),
		}
		if cmd, handled := m.checkSessionErr(res.Err); handled {
			cmds = append(cmds, cmd)
		} else {
			cmds = append(cmds, m.notify(model.SeverityError,
				api.Message(res.Err, "Failed to update todo.")))
		}
		return m, tea.Batch(cmds...)
	}

	// Settled in our favor; persist the folder snapshot as shown.
	return m, m.cacheCurrentFolder(m.todoList.Folder(), m.todoList.Todos())
}

// deleteSelectedTodo removes the selected todo, challenging for the
// folder password first when the folder is locked.
func (m Model) deleteSelectedTodo() (Model, tea.Cmd) {
	todo, ok := m.todoList.SelectedTodo()
	if !ok {
		return m, nil
	}

	folder := m.todoList.Folder()
	if folder.Locked {
		return m.beginChallenge(
			workflow.DeleteTodoAction(folder.ID, todo.ID),
			folder.Name, "delete \""+todo.Title+"\"")
	}

	return m, m.deleteTodo(todo.ID)
}

// deleteTodo issues the deletion call for a todo in an unlocked folder.
func (m Model) deleteTodo(todoID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		err := client.DeleteTodo(ctx, todoID, "")
		return todoDeletedMsg{todoID: todoID, err: err}
	}
}

// handleTodoDeleted removes the todo from the list once the backend
// confirms.
func (m Model) handleTodoDeleted(msg todoDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if cmd, handled := m.checkSessionErr(msg.err); handled {
			return m, cmd
		}
		if api.ErrorKind(msg.err) == api.KindNotFound {
			// Already gone; treat it as deleted.
			m.todoList.Remove(msg.todoID)
			m.toggle.Forget(msg.todoID)
			m.refresher.RefreshNow()
			return m, nil
		}
		return m, m.notify(model.SeverityError,
			api.Message(msg.err, "Failed to delete todo."))
	}

	m.todoList.Remove(msg.todoID)
	m.toggle.Forget(msg.todoID)
	m.refresher.RefreshNow()
	return m, tea.Batch(
		m.notify(model.SeveritySuccess, "Todo deleted."),
		m.cacheCurrentFolder(m.todoList.Folder(), m.todoList.Todos()),
	)
}
