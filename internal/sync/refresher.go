package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/model"
)

// FolderLister is the slice of the backend client the refresher polls.
type FolderLister interface {
	ListFolders(ctx context.Context) ([]model.Folder, error)
}

// RefreshResultMsg is a tea.Msg sent when a background folder refresh
// completes.
type RefreshResultMsg struct {
	Folders []model.Folder
	Err     error
}

// fetchTimeout is the maximum time allowed for a single refresh.
const fetchTimeout = 30 * time.Second

// Refresher periodically re-fetches the folder list while the user is
// logged in, keeping the folder grid's todo counts current without a
// manual reload. It is started after login and stopped on logout, so it
// never issues calls without a session.
type Refresher struct {
	client   FolderLister
	interval time.Duration

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}

	mu      gosync.Mutex
	stopCh  chan struct{}
	running bool
}

// New creates a Refresher polling at the given interval.
func New(client FolderLister, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 120 * time.Second
	}
	return &Refresher{
		client:    client,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 16),
	}
}

// Start launches the polling goroutine and returns a subscription
// command that delivers RefreshResultMsg messages to the Bubble Tea
// runtime. Starting an already-running refresher is a no-op.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return r.waitForResult()
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	go r.loop(stopCh)

	return r.waitForResult()
}

// Stop halts the polling goroutine. The refresher can be started again
// after the next login.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}

// RefreshNow triggers an immediate fetch without waiting for the ticker.
func (r *Refresher) RefreshNow() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// A refresh is already queued.
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it after processing a RefreshResultMsg to keep listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}

// loop runs the polling cycle until stopCh closes.
func (r *Refresher) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Do an initial fetch immediately.
	r.fetch()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			r.fetch()
		case <-r.triggerCh:
			r.fetch()
		}
	}
}

// fetch performs one folder list call and publishes the result.
func (r *Refresher) fetch() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	folders, err := r.client.ListFolders(ctx)
	r.sendResult(RefreshResultMsg{Folders: folders, Err: err})
}

// sendResult sends a result without blocking the polling goroutine.
func (r *Refresher) sendResult(msg RefreshResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if the channel is full; the next tick resends.
	}
}

// waitForResult returns a tea.Cmd that waits for the next result.
func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
