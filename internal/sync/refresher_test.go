package sync

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	"taskmaster-tui/internal/model"
)

// fakeLister returns a scripted folder list and counts calls.
type fakeLister struct {
	mu      gosync.Mutex
	folders []model.Folder
	err     error
	calls   int
}

func (f *fakeLister) ListFolders(_ context.Context) ([]model.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.folders, f.err
}

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRefresher_InitialFetch(t *testing.T) {
	lister := &fakeLister{folders: []model.Folder{{ID: 1, Name: "Work"}}}
	r := New(lister, time.Hour)
	defer r.Stop()

	cmd := r.Start()
	raw := cmd()
	msg, ok := raw.(RefreshResultMsg)
	if !ok {
		t.Fatalf("expected RefreshResultMsg, got %T", raw)
	}
	if msg.Err != nil {
		t.Fatalf("refresh error: %v", msg.Err)
	}
	if len(msg.Folders) != 1 || msg.Folders[0].Name != "Work" {
		t.Fatalf("folders got=%+v", msg.Folders)
	}
}

func TestRefresher_RefreshNow(t *testing.T) {
	lister := &fakeLister{}
	r := New(lister, time.Hour)
	defer r.Stop()

	first := r.Start()
	first() // consume the initial fetch

	r.RefreshNow()
	second := r.WaitForNextResult()
	if _, ok := second().(RefreshResultMsg); !ok {
		t.Fatal("expected a second refresh result")
	}
	if got := lister.callCount(); got != 2 {
		t.Fatalf("backend calls got=%d want=2", got)
	}
}

func TestRefresher_StopAndRestart(t *testing.T) {
	lister := &fakeLister{}
	r := New(lister, time.Hour)

	cmd := r.Start()
	cmd()
	r.Stop()
	// Stopping twice is safe.
	r.Stop()

	calls := lister.callCount()

	// A new login restarts the same refresher.
	cmd = r.Start()
	cmd()
	defer r.Stop()

	if got := lister.callCount(); got != calls+1 {
		t.Fatalf("backend calls after restart got=%d want=%d", got, calls+1)
	}
}
