package workflow

import (
	"context"
	"testing"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/model"
)

// fakeFolderClient records calls and returns scripted results.
type fakeFolderClient struct {
	verifyErr error
	listErr   error
	deleteErr error
	createErr error

	todos   []model.Todo
	created model.Todo

	verifiedFolder int64
	verifiedWith   string
	listedFolder   int64
	listedWith     string
	deletedTodo    int64
	deleteCalls    int
}

func (f *fakeFolderClient) VerifyFolderPassword(_ context.Context, folderID int64, password string) error {
	f.verifiedFolder = folderID
	f.verifiedWith = password
	return f.verifyErr
}

func (f *fakeFolderClient) ListFolderTodos(_ context.Context, folderID int64, password string) ([]model.Todo, error) {
	f.listedFolder = folderID
	f.listedWith = password
	return f.todos, f.listErr
}

func (f *fakeFolderClient) CreateTodo(_ context.Context, req api.CreateTodoRequest) (model.Todo, error) {
	return f.created, f.createErr
}

func (f *fakeFolderClient) DeleteTodo(_ context.Context, todoID int64, password string) error {
	f.deletedTodo = todoID
	f.deleteCalls++
	return f.deleteErr
}

func TestFolderAccess_ListFlow(t *testing.T) {
	client := &fakeFolderClient{
		todos: []model.Todo{{ID: 1, Title: "buy milk", FolderID: 7}},
	}
	w := NewFolderAccess(client)

	if got := w.State(); got != StateIdle {
		t.Fatalf("initial state got=%v want=StateIdle", got)
	}

	if err := w.Begin(ListTodosAction(7)); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := w.State(); got != StateChallengePending {
		t.Fatalf("state after Begin got=%v want=StateChallengePending", got)
	}

	result, err := w.Submit(context.Background(), "secret")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if client.verifiedFolder != 7 || client.verifiedWith != "secret" {
		t.Fatalf("verify called with folder=%d password=%q", client.verifiedFolder, client.verifiedWith)
	}
	if client.listedFolder != 7 || client.listedWith != "secret" {
		t.Fatalf("list called with folder=%d password=%q", client.listedFolder, client.listedWith)
	}
	if len(result.Todos) != 1 || result.Todos[0].Title != "buy milk" {
		t.Fatalf("unexpected todos %+v", result.Todos)
	}
	if got := w.State(); got != StateIdle {
		t.Fatalf("state after success got=%v want=StateIdle", got)
	}
}

func TestFolderAccess_WrongPasswordAllowsRetry(t *testing.T) {
	client := &fakeFolderClient{
		verifyErr: &api.Error{Kind: api.KindFolderLocked, Status: 401, Message: "Incorrect folder password"},
	}
	w := NewFolderAccess(client)

	if err := w.Begin(DeleteTodoAction(3, 11)); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if _, err := w.Submit(context.Background(), "wrong"); err == nil {
		t.Fatal("expected verification failure")
	}
	if got := w.State(); got != StateFailed {
		t.Fatalf("state after failure got=%v want=StateFailed", got)
	}
	if got := w.FailureMessage(); got != "Incorrect folder password" {
		t.Fatalf("failure message got=%q", got)
	}
	if client.deleteCalls != 0 {
		t.Fatalf("delete must not run before verification, calls=%d", client.deleteCalls)
	}

	// Retry from Failed succeeds and runs the pending delete.
	client.verifyErr = nil
	if _, err := w.Submit(context.Background(), "right"); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if client.deletedTodo != 11 || client.deleteCalls != 1 {
		t.Fatalf("delete got todo=%d calls=%d", client.deletedTodo, client.deleteCalls)
	}
}

func TestFolderAccess_CancelHasNoSideEffects(t *testing.T) {
	client := &fakeFolderClient{}
	w := NewFolderAccess(client)

	if err := w.Begin(DeleteTodoAction(3, 11)); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	w.Cancel()

	if got := w.State(); got != StateIdle {
		t.Fatalf("state after Cancel got=%v want=StateIdle", got)
	}
	if _, ok := w.Pending(); ok {
		t.Fatal("pending action must be discarded on Cancel")
	}
	if client.deleteCalls != 0 {
		t.Fatalf("cancel must not touch the backend, delete calls=%d", client.deleteCalls)
	}

	// Submitting after Cancel is rejected.
	if _, err := w.Submit(context.Background(), "pw"); err == nil {
		t.Fatal("expected Submit after Cancel to fail")
	}
}

func TestFolderAccess_SingleChallengeAtATime(t *testing.T) {
	w := NewFolderAccess(&fakeFolderClient{})

	if err := w.Begin(ListTodosAction(1)); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := w.Begin(ListTodosAction(2)); err != ErrChallengeActive {
		t.Fatalf("second Begin got=%v want=ErrChallengeActive", err)
	}

	// The original pending action is untouched.
	pending, ok := w.Pending()
	if !ok || pending.FolderID != 1 {
		t.Fatalf("pending got=%+v ok=%v", pending, ok)
	}
}

func TestFolderAccess_ActionFailureConsumesChallenge(t *testing.T) {
	client := &fakeFolderClient{
		listErr: &api.Error{Kind: api.KindServer, Status: 500, Message: "boom"},
	}
	w := NewFolderAccess(client)

	if err := w.Begin(ListTodosAction(4)); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if _, err := w.Submit(context.Background(), "pw"); err == nil {
		t.Fatal("expected list failure to propagate")
	}

	// Verification passed, so the challenge is over even though the
	// re-issued action failed.
	if got := w.State(); got != StateIdle {
		t.Fatalf("state got=%v want=StateIdle", got)
	}
}
