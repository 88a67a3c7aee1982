// Package ledger defines the persistent "already notified" store shared
// by all watch monitors. Inserts are idempotent by listing ID, which is
// what makes the notification pipeline safe under overlapping polls and
// process restarts.
package ledger

import (
	"context"
	"time"

	"github.com/seojun-dev/danwatch/internal/domain"
)

// Entry is one notified listing as recorded in the ledger. Entries are
// created exactly once per distinct listing ID and never updated.
type Entry struct {
	ID          string    `db:"id"`
	Keyword     string    `db:"keyword"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       int       `db:"price"`
	Seller      string    `db:"seller"`
	Location    string    `db:"location"`
	URL         string    `db:"url"`
	RecordedAt  time.Time `db:"recorded_at"`
}

// EntryFromListing builds the ledger entry for a listing observed now.
func EntryFromListing(l *domain.Listing) Entry {
	return Entry{
		ID:          l.ID,
		Keyword:     l.SearchKeyword,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Seller:      l.Seller,
		Location:    l.Location,
		URL:         l.URL,
		RecordedAt:  time.Now(),
	}
}

// Ledger is the dedup store contract. Implementations must be safe for
// concurrent use by multiple monitors: two monitors racing to insert
// the same ID must both succeed and leave exactly one entry.
type Ledger interface {
	// Exists reports whether the listing ID has already been notified.
	Exists(ctx context.Context, id string) (bool, error)

	// Insert records an entry. Inserting an ID that already exists is a
	// no-op, not an error.
	Insert(ctx context.Context, e Entry) error

	Close() error
}
