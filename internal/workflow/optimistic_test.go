package workflow

import (
	"context"
	"sync"
	"testing"

	"taskmaster-tui/internal/api"
)

// fakeToggler scripts UpdateTodo results per call.
type fakeToggler struct {
	mu    sync.Mutex
	errs  []error
	calls []bool
}

func (f *fakeToggler) UpdateTodo(_ context.Context, todoID int64, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, completed)
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func TestOptimisticToggle_Success(t *testing.T) {
	client := &fakeToggler{}
	o := NewOptimisticToggle(client)

	mut := o.Begin(5, false)
	if mut.Prev != false || mut.Next != true {
		t.Fatalf("mutation got=%+v", mut)
	}

	res := o.Commit(context.Background(), mut)
	if res.Err != nil || res.Stale {
		t.Fatalf("result got=%+v", res)
	}
	if res.Rollback() {
		t.Fatal("successful toggle must not roll back")
	}
	if len(client.calls) != 1 || client.calls[0] != true {
		t.Fatalf("backend calls got=%v", client.calls)
	}
}

func TestOptimisticToggle_FailureRollsBack(t *testing.T) {
	client := &fakeToggler{
		errs: []error{&api.Error{Kind: api.KindServer, Status: 500, Message: "boom"}},
	}
	o := NewOptimisticToggle(client)

	mut := o.Begin(5, true)
	res := o.Commit(context.Background(), mut)

	if res.Err == nil {
		t.Fatal("expected commit error")
	}
	if !res.Rollback() {
		t.Fatal("failed toggle must roll back")
	}
	if res.Mutation.Prev != true {
		t.Fatalf("rollback target got=%v want=true", res.Mutation.Prev)
	}
}

func TestOptimisticToggle_StaleResultDiscarded(t *testing.T) {
	client := &fakeToggler{
		errs: []error{&api.Error{Kind: api.KindNetwork, Message: "down"}},
	}
	o := NewOptimisticToggle(client)

	first := o.Begin(5, false)
	// The user toggles again before the first call settles.
	second := o.Begin(5, true)

	res := o.Commit(context.Background(), first)
	if !res.Stale {
		t.Fatal("superseded mutation must be stale")
	}
	if res.Rollback() {
		t.Fatal("stale failure must not roll back; the newer toggle owns the state")
	}

	res = o.Commit(context.Background(), second)
	if res.Stale {
		t.Fatal("latest mutation must not be stale")
	}
	if res.Err != nil {
		t.Fatalf("second commit: %v", res.Err)
	}
}

func TestOptimisticToggle_PerTodoSequences(t *testing.T) {
	o := NewOptimisticToggle(&fakeToggler{})

	a := o.Begin(1, false)
	b := o.Begin(2, false)

	// A later toggle on one todo must not stale the other todo's toggle.
	_ = o.Begin(1, true)

	if res := o.Commit(context.Background(), b); res.Stale {
		t.Fatal("toggle on todo 2 wrongly marked stale")
	}
	if res := o.Commit(context.Background(), a); !res.Stale {
		t.Fatal("superseded toggle on todo 1 must be stale")
	}
}

func TestOptimisticToggle_ForgetResetsSequence(t *testing.T) {
	o := NewOptimisticToggle(&fakeToggler{})

	mut := o.Begin(9, false)
	o.Forget(9)

	// After Forget the old mutation no longer matches the tracked
	// sequence, so its late result is dropped.
	if res := o.Commit(context.Background(), mut); !res.Stale {
		t.Fatal("mutation surviving Forget must be stale")
	}
}
