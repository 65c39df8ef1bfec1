// Package sync reloads the cache in the background and reports each
// completed reload to the Bubble Tea runtime.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/shift-handover/internal/gateway"
)

// RefreshState represents the current state of the refresher.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshRunning
	RefreshError
)

// RefreshStatus is a point-in-time view of the refresher.
type RefreshStatus struct {
	State       RefreshState
	LastRefresh time.Time
	Error       error
}

// RefreshResultMsg is a tea.Msg sent when a reload completes. Err joins
// every collection that failed to load; the others were replaced.
type RefreshResultMsg struct {
	Err       error
	AuthError *AuthErrorMsg
	At        time.Time
}

// AuthErrorMsg is a tea.Msg sent when the backend rejects the API key.
type AuthErrorMsg struct {
	Message string
}

// Loader reloads every cached collection. *cache.Cache satisfies it.
type Loader interface {
	LoadAll(ctx context.Context) error
}

// Refresher reloads a Loader on a fixed interval and on demand.
type Refresher struct {
	loader    Loader
	interval  time.Duration
	timeout   time.Duration
	status    RefreshStatus
	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
	now       func() time.Time
}

// New creates a Refresher. An interval of zero or less disables the
// timer; reloads then happen only through RefreshNow. timeout bounds each
// reload; zero means no deadline.
func New(l Loader, interval, timeout time.Duration) *Refresher {
	return &Refresher{
		loader:    l,
		interval:  interval,
		timeout:   timeout,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Start launches the reload loop and returns a tea.Cmd that waits for the
// first result. Calling Start twice returns nil.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.waitForResult()
}

// Stop halts the reload loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// RefreshNow requests an immediate reload. Requests made while one is
// already queued are merged.
func (r *Refresher) RefreshNow() tea.Cmd {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
	return nil
}

// Status returns the current refresher status.
func (r *Refresher) Status() RefreshStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Refresher) loop() {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-r.stopCh:
			return
		case <-tick:
			r.reload()
		case <-r.triggerCh:
			r.reload()
		}
	}
}

// reload performs one LoadAll and publishes the outcome.
func (r *Refresher) reload() {
	r.setStatus(RefreshRunning, nil)

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	err := r.loader.LoadAll(ctx)
	at := r.now()

	if err != nil {
		r.setStatus(RefreshError, err)

		msg := RefreshResultMsg{Err: err, At: at}
		if gateway.IsAuthError(err) {
			msg.AuthError = &AuthErrorMsg{
				Message: fmt.Sprintf("backend rejected the API key. Run 'handover login' to update it: %v", err),
			}
		}
		r.sendResult(msg)
		return
	}

	r.mu.Lock()
	r.status = RefreshStatus{State: RefreshIdle, LastRefresh: at}
	r.mu.Unlock()
	r.sendResult(RefreshResultMsg{At: at})
}

func (r *Refresher) setStatus(state RefreshState, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.State = state
	r.status.Error = err
}

// sendResult sends a RefreshResultMsg without blocking.
func (r *Refresher) sendResult(msg RefreshResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the loop
	}
}

func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next reload.
// Call it after handling a RefreshResultMsg to keep listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}
