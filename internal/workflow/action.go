package workflow

import (
	"fmt"

	"taskmaster-tui/internal/api"
)

// ActionKind identifies which folder operation a password challenge is
// gating.
type ActionKind int

const (
	ActionListTodos ActionKind = iota
	ActionDeleteTodo
	ActionCreateTodo
)

func (k ActionKind) String() string {
	switch k {
	case ActionListTodos:
		return "list todos"
	case ActionDeleteTodo:
		return "delete todo"
	case ActionCreateTodo:
		return "create todo"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// PendingAction describes what to do once a password challenge succeeds.
// It exists only for the duration of one challenge and is discarded on
// cancel or completion.
type PendingAction struct {
	Kind     ActionKind
	FolderID int64

	// TodoID is set for ActionDeleteTodo.
	TodoID int64

	// Create is set for ActionCreateTodo.
	Create api.CreateTodoRequest
}

// ListTodosAction builds a pending list action for a folder.
func ListTodosAction(folderID int64) PendingAction {
	return PendingAction{Kind: ActionListTodos, FolderID: folderID}
}

// DeleteTodoAction builds a pending delete action for a todo in a folder.
func DeleteTodoAction(folderID, todoID int64) PendingAction {
	return PendingAction{Kind: ActionDeleteTodo, FolderID: folderID, TodoID: todoID}
}

// CreateTodoAction builds a pending create action for a folder.
func CreateTodoAction(req api.CreateTodoRequest) PendingAction {
	return PendingAction{Kind: ActionCreateTodo, FolderID: req.FolderID, Create: req}
}
