package workflow

import (
	"context"
	"sync"
)

// Toggler is the slice of the backend client the optimistic workflow
// drives. *api.Client satisfies it.
type Toggler interface {
	UpdateTodo(ctx context.Context, todoID int64, completed bool) error
}

// Mutation is one in-flight optimistic completion toggle. The caller
// applies Next to local state the moment Begin returns, then reconciles
// with the ToggleResult once the backend settles.
type Mutation struct {
	TodoID int64

	// Seq orders mutations per todo; a response whose Seq is older than
	// the latest issued for the same todo is discarded.
	Seq uint64

	// Prev is the completed value captured before the toggle, restored
	// on failure.
	Prev bool

	// Next is the value applied optimistically and sent to the backend.
	Next bool
}

// ToggleResult reports how an optimistic mutation settled.
type ToggleResult struct {
	Mutation Mutation
	Err      error

	// Stale means a newer toggle for the same todo was issued while this
	// one was in flight; the result must not touch local state.
	Stale bool
}

// Rollback reports whether local state must be reverted to Prev.
func (r ToggleResult) Rollback() bool {
	return r.Err != nil && !r.Stale
}

// OptimisticToggle runs the capture/apply/call/reconcile cycle for todo
// completion. Last user intent wins: each todo carries a monotonic
// sequence number and only the newest mutation's response may update
// state.
type OptimisticToggle struct {
	client Toggler

	mu  sync.Mutex
	seq map[int64]uint64
}

// NewOptimisticToggle creates the workflow over the given client.
func NewOptimisticToggle(client Toggler) *OptimisticToggle {
	return &OptimisticToggle{
		client: client,
		seq:    make(map[int64]uint64),
	}
}

// Begin captures the current completed value and registers a new
// mutation toggling it. The caller flips local state to Next immediately.
func (o *OptimisticToggle) Begin(todoID int64, completed bool) Mutation {
	o.mu.Lock()
	o.seq[todoID]++
	seq := o.seq[todoID]
	o.mu.Unlock()

	return Mutation{
		TodoID: todoID,
		Seq:    seq,
		Prev:   completed,
		Next:   !completed,
	}
}

// Commit issues the backend update for m and reports the settlement.
func (o *OptimisticToggle) Commit(ctx context.Context, m Mutation) ToggleResult {
	err := o.client.UpdateTodo(ctx, m.TodoID, m.Next)

	o.mu.Lock()
	stale := o.seq[m.TodoID] != m.Seq
	o.mu.Unlock()

	return ToggleResult{Mutation: m, Err: err, Stale: stale}
}

// Forget drops sequence tracking for a todo, e.g. after it is deleted.
func (o *OptimisticToggle) Forget(todoID int64) {
	o.mu.Lock()
	delete(o.seq, todoID)
	o.mu.Unlock()
}
