// Package watch owns the watch lifecycle: one long-lived monitor per
// active filter, the registry tracking them, and the one-shot scanner.
package watch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/ledger"
	"github.com/seojun-dev/danwatch/internal/logger"
)

// Source produces the current snapshot of listings for a filter.
type Source interface {
	Search(ctx context.Context, f domain.Filter) ([]domain.Listing, error)
}

// Notifier delivers a message to a set of chat IDs with per-chat outcomes.
type Notifier interface {
	Send(ctx context.Context, chatIDs []string, text string) ([]domain.DeliveryResult, error)
}

// Monitor states. There is no failed state: every iteration-level error
// is logged and retried, only cancellation terminates a monitor.
const (
	stateRunning int32 = iota
	stateCancelled
)

// Monitor runs the poll/filter/notify loop for one filter. It is
// created and owned by the Registry; the goroutine never outlives its
// cancellation.
type Monitor struct {
	filter   domain.Filter
	chatIDs  []string
	source   Source
	notifier Notifier
	ledger   ledger.Ledger
	logger   logger.Logger

	epoch            time.Time
	pollInterval     time.Duration
	recoveryInterval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
	state  atomic.Int32
}

// Alive reports whether the monitor has not reached a terminal state.
func (m *Monitor) Alive() bool {
	return m.state.Load() == stateRunning
}

// Cancel requests cancellation. The loop exits at its next suspension
// point; callers must treat this as "requested", not "complete".
func (m *Monitor) Cancel() {
	m.cancel()
}

// Done is closed once the monitor goroutine has fully exited.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// Filter returns the immutable filter this monitor watches.
func (m *Monitor) Filter() domain.Filter {
	return m.filter
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)
	defer m.state.Store(stateCancelled)

	m.logger.Info("watch started",
		logger.String("filter", m.filter.Key()),
		logger.Duration("poll_interval", m.pollInterval))

	for {
		delay := m.pollInterval
		if err := m.runOnce(ctx); err != nil {
			// Only unexpected failures land here (fetch errors are
			// absorbed inside runOnce); retry sooner than a full poll.
			m.logger.Error("watch iteration failed",
				logger.String("filter", m.filter.Key()),
				logger.Error(err))
			delay = m.recoveryInterval
		}

		select {
		case <-ctx.Done():
			m.logger.Info("watch cancelled", logger.String("filter", m.filter.Key()))
			return
		case <-time.After(delay):
		}
	}
}

// runOnce executes one poll iteration. Fetch failures are treated as an
// empty snapshot; the returned error covers only unexpected failures
// (including recovered panics), which trigger the recovery backoff.
func (m *Monitor) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("iteration panic: %v", r)
		}
	}()

	listings, err := m.source.Search(ctx, m.filter)
	if err != nil {
		m.logger.Warn("fetch failed, treating as empty snapshot",
			logger.String("filter", m.filter.Key()),
			logger.Error(err))
		return nil
	}

	for i := range listings {
		m.process(ctx, &listings[i])
	}
	return nil
}

// process handles one listing: recency and novelty checks, then notify
// and record. Each listing is individually atomic; a failure here never
// prevents processing of the rest of the snapshot.
func (m *Monitor) process(ctx context.Context, l *domain.Listing) {
	// Never notify an un-timestamped listing: recency cannot be
	// established without posted-at.
	if l.PostedAt == nil {
		m.logger.Debug("skipping listing without timestamp", logger.String("id", l.ID))
		return
	}

	// Anything posted before the server epoch is pre-existing noise.
	if !l.PostedAt.After(m.epoch) {
		return
	}

	seen, err := m.ledger.Exists(ctx, l.ID)
	if err != nil {
		// Proceed as unseen: worst case is a duplicate notification,
		// which beats silently dropping a new listing.
		m.logger.Warn("ledger lookup failed",
			logger.String("id", l.ID),
			logger.Error(err))
	}
	if seen {
		return
	}

	text := domain.NotificationText(l)
	if _, err := m.notifier.Send(ctx, m.chatIDs, text); err != nil {
		m.logger.Error("notification send failed",
			logger.String("id", l.ID),
			logger.Error(err))
	}

	// Insert regardless of the notify outcome so a flaky transport
	// cannot turn into a notification storm.
	if err := m.ledger.Insert(ctx, ledger.EntryFromListing(l)); err != nil {
		m.logger.Error("ledger insert failed",
			logger.String("id", l.ID),
			logger.Error(err))
		return
	}

	m.logger.Info("new listing notified",
		logger.String("id", l.ID),
		logger.String("filter", m.filter.Key()),
		logger.Int("price", l.Price))
}
