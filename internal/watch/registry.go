package watch

import (
	"context"
	"sync"
	"time"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/ledger"
	"github.com/seojun-dev/danwatch/internal/logger"
)

// StartResult is the outcome of a start request.
type StartResult string

// StopResult is the outcome of a stop request.
type StopResult string

const (
	StartedWatching StartResult = "watching"
	AlreadyWatching StartResult = "already_watching"

	Stopping StopResult = "stopping"
	NotFound StopResult = "not_found"
)

// ActiveWatch is the registry's view of one live monitor.
type ActiveWatch struct {
	Location string `json:"location"`
	Keyword  string `json:"keyword"`
}

// Options carries the shared collaborators every monitor uses.
type Options struct {
	Source   Source
	Notifier Notifier
	Ledger   ledger.Ledger
	Logger   logger.Logger

	// Epoch is the process-wide startup timestamp; listings posted at
	// or before it are never notified.
	Epoch time.Time

	// ChatIDs is the default channel set monitors notify.
	ChatIDs []string

	PollInterval     time.Duration
	RecoveryInterval time.Duration
}

// Registry maps filter keys to their running monitors. All map access
// goes through the mutex; monitors themselves flip their own state
// without touching the map, so terminal handles are filtered lazily at
// query time rather than eagerly purged.
type Registry struct {
	opts Options

	mu       sync.RWMutex
	monitors map[string]*Monitor
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:     opts,
		monitors: make(map[string]*Monitor),
	}
}

// Start spawns a monitor for the filter unless a live one already
// exists for its key. Idempotent on the filter key.
func (r *Registry) Start(ctx context.Context, f domain.Filter) StartResult {
	key := f.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.monitors[key]; ok && existing.Alive() {
		return AlreadyWatching
	}

	mctx, cancel := context.WithCancel(ctx)
	m := &Monitor{
		filter:           f,
		chatIDs:          r.opts.ChatIDs,
		source:           r.opts.Source,
		notifier:         r.opts.Notifier,
		ledger:           r.opts.Ledger,
		logger:           r.opts.Logger,
		epoch:            r.opts.Epoch,
		pollInterval:     r.opts.PollInterval,
		recoveryInterval: r.opts.RecoveryInterval,
		cancel:           cancel,
		done:             make(chan struct{}),
	}
	r.monitors[key] = m
	go m.run(mctx)

	return StartedWatching
}

// Stop requests cancellation of the filter's monitor. It does not block
// for teardown; completion is asynchronous.
func (r *Registry) Stop(f domain.Filter) StopResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.monitors[f.Key()]
	if !ok {
		return NotFound
	}
	m.Cancel()
	return Stopping
}

// Active enumerates monitors that have not reached a terminal state.
func (r *Registry) Active() map[string]ActiveWatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]ActiveWatch)
	for key, m := range r.monitors {
		if !m.Alive() {
			continue
		}
		f := m.Filter()
		result[key] = ActiveWatch{Location: f.Location, Keyword: f.Keyword}
	}
	return result
}

// Count returns the number of live monitors.
func (r *Registry) Count() int {
	return len(r.Active())
}

// StopAll cancels every monitor and waits for them to exit, up to the
// given timeout. Used during graceful shutdown.
func (r *Registry) StopAll(timeout time.Duration) {
	r.mu.RLock()
	monitors := make([]*Monitor, 0, len(r.monitors))
	for _, m := range r.monitors {
		monitors = append(monitors, m)
	}
	r.mu.RUnlock()

	for _, m := range monitors {
		m.Cancel()
	}

	deadline := time.After(timeout)
	for _, m := range monitors {
		select {
		case <-m.Done():
		case <-deadline:
			return
		}
	}
}
