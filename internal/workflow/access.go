package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/model"
)

// AccessState is the folder access workflow's current state.
type AccessState int

const (
	// StateIdle means no challenge is in progress.
	StateIdle AccessState = iota

	// StateChallengePending means a password dialog is open for the
	// pending action's folder.
	StateChallengePending

	// StateVerifying means a submitted password is being checked.
	StateVerifying

	// StateFailed means verification failed; the dialog stays open with
	// the failure message so the user can retry.
	StateFailed
)

// ErrChallengeActive is returned by Begin when a challenge for another
// action is already in progress.
var ErrChallengeActive = errors.New("password challenge already in progress")

// errNoChallenge guards Submit against calls outside a challenge.
var errNoChallenge = errors.New("no password challenge in progress")

// FolderClient is the slice of the backend client the access workflow
// drives. *api.Client satisfies it.
type FolderClient interface {
	VerifyFolderPassword(ctx context.Context, folderID int64, password string) error
	ListFolderTodos(ctx context.Context, folderID int64, password string) ([]model.Todo, error)
	CreateTodo(ctx context.Context, req api.CreateTodoRequest) (model.Todo, error)
	DeleteTodo(ctx context.Context, todoID int64, password string) error
}

// AccessResult is the outcome of a pending action re-issued after a
// successful verification.
type AccessResult struct {
	Action PendingAction

	// Todos is populated for ActionListTodos.
	Todos []model.Todo

	// Created is populated for ActionCreateTodo.
	Created *model.Todo
}

// FolderAccess gates list/add/delete operations on locked folders behind
// a password challenge. The password lives only inside the
// ChallengePending/Verifying states and is wiped on every transition back
// to Idle, so a password typed for one folder can never reach an action
// on another: Submit only ever verifies and re-issues against the folder
// id captured in the pending action.
type FolderAccess struct {
	client FolderClient

	// mu guards the state fields; Submit runs inside a tea.Cmd
	// goroutine while the UI thread reads State.
	mu      sync.Mutex
	state   AccessState
	pending PendingAction
	failMsg string
}

// NewFolderAccess creates an idle folder access workflow.
func NewFolderAccess(client FolderClient) *FolderAccess {
	return &FolderAccess{client: client, state: StateIdle}
}

// State returns the current workflow state.
func (w *FolderAccess) State() AccessState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Pending returns the action awaiting verification, if any.
func (w *FolderAccess) Pending() (PendingAction, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateIdle {
		return PendingAction{}, false
	}
	return w.pending, true
}

// FailureMessage returns the verification failure shown in the dialog.
func (w *FolderAccess) FailureMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateFailed {
		return ""
	}
	return w.failMsg
}

// Begin opens a challenge for the given action. Only one challenge may be
// active at a time.
func (w *FolderAccess) Begin(action PendingAction) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateIdle {
		return ErrChallengeActive
	}
	w.pending = action
	w.state = StateChallengePending
	return nil
}

// Submit verifies the password against the pending action's folder and,
// on success, re-issues that action with the password attached, then
// returns to Idle. On verification failure it moves to Failed and keeps
// the pending action so the user can retry or cancel.
//
// A non-nil error with a nil result after successful verification means
// the re-issued action itself failed; the challenge is still consumed
// (the dialog closes) and the caller surfaces the error as a
// notification, matching user-initiated-retry-only semantics.
func (w *FolderAccess) Submit(ctx context.Context, password string) (*AccessResult, error) {
	w.mu.Lock()
	if w.state != StateChallengePending && w.state != StateFailed {
		w.mu.Unlock()
		return nil, errNoChallenge
	}
	action := w.pending
	w.state = StateVerifying
	w.failMsg = ""
	w.mu.Unlock()

	if err := w.client.VerifyFolderPassword(ctx, action.FolderID, password); err != nil {
		w.mu.Lock()
		w.state = StateFailed
		w.failMsg = api.Message(err, "Invalid password")
		w.mu.Unlock()
		return nil, err
	}

	// Verification passed; the challenge is consumed regardless of how
	// the re-issued action fares.
	w.Cancel()

	result := &AccessResult{Action: action}
	switch action.Kind {
	case ActionListTodos:
		todos, err := w.client.ListFolderTodos(ctx, action.FolderID, password)
		if err != nil {
			return nil, err
		}
		result.Todos = todos

	case ActionDeleteTodo:
		if err := w.client.DeleteTodo(ctx, action.TodoID, password); err != nil {
			return nil, err
		}

	case ActionCreateTodo:
		todo, err := w.client.CreateTodo(ctx, action.Create)
		if err != nil {
			return nil, err
		}
		result.Created = &todo

	default:
		return nil, fmt.Errorf("unknown pending action %v", action.Kind)
	}

	return result, nil
}

// Cancel discards the pending action and password and returns to Idle.
// It has no backend side effects; the folder's todo list is left exactly
// as it was before the triggering action.
func (w *FolderAccess) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateIdle
	w.pending = PendingAction{}
	w.failMsg = ""
}
