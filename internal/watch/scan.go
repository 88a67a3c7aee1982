package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/logger"
)

// Scanner is the one-shot, stateless variant of a monitor: it fetches a
// snapshot once, notifies everything inside the lookback window, and
// deliberately never consults the ledger. A manual "catch me up", not
// continuous monitoring, so re-notification is allowed.
type Scanner struct {
	source   Source
	notifier Notifier
	logger   logger.Logger
	chatIDs  []string
	now      func() time.Time
}

// ScanResult reports what a scan sent.
type ScanResult struct {
	SentCount int      `json:"sent_count"`
	SentIDs   []string `json:"sent_ids"`
}

// NewScanner creates a scanner notifying the given default chat set.
func NewScanner(source Source, notifier Notifier, chatIDs []string, log logger.Logger) *Scanner {
	return &Scanner{
		source:   source,
		notifier: notifier,
		logger:   log,
		chatIDs:  chatIDs,
		now:      time.Now,
	}
}

// Scan fetches listings for the filter once and notifies each one
// posted within the last `days` days.
func (s *Scanner) Scan(ctx context.Context, f domain.Filter, days int) (*ScanResult, error) {
	listings, err := s.source.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	result := &ScanResult{SentIDs: []string{}}

	for i := range listings {
		l := &listings[i]
		if !l.PostedSince(cutoff) {
			continue
		}

		if _, err := s.notifier.Send(ctx, s.chatIDs, domain.NotificationText(l)); err != nil {
			return nil, fmt.Errorf("send notification: %w", err)
		}
		result.SentIDs = append(result.SentIDs, l.ID)
	}

	result.SentCount = len(result.SentIDs)
	s.logger.Info("scan completed",
		logger.String("filter", f.Key()),
		logger.Int("fetched", len(listings)),
		logger.Int("sent", result.SentCount))

	return result, nil
}
