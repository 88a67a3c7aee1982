package domain

import "time"

// Listing is a snapshot of one marketplace post at fetch time.
// ID is the stable identifier assigned by the site and never changes
// meaning once observed; everything else may drift between fetches.
type Listing struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Price         int        `json:"price"`
	Seller        string     `json:"seller"`
	Location      string     `json:"location"`
	SearchKeyword string     `json:"search_keyword"`
	URL           string     `json:"url"`
	PostedAt      *time.Time `json:"posted_at,omitempty"` // nil when extraction failed
}

// PostedAfter reports whether the listing carries a timestamp strictly
// after cutoff. A listing without a timestamp is never "after" anything:
// recency cannot be established, so it must not be notified.
func (l *Listing) PostedAfter(cutoff time.Time) bool {
	return l.PostedAt != nil && l.PostedAt.After(cutoff)
}

// PostedSince reports whether the listing was posted at or after cutoff.
func (l *Listing) PostedSince(cutoff time.Time) bool {
	return l.PostedAt != nil && !l.PostedAt.Before(cutoff)
}
