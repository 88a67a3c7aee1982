package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter is a user-defined watch criterion. Filters are immutable once
// a monitor has been started for them; identity is the Key.
type Filter struct {
	Location string `json:"location"`
	Keyword  string `json:"keyword"`
	MinPrice *int   `json:"min_price,omitempty"`
	MaxPrice *int   `json:"max_price,omitempty"`
}

// keyPlaceholder stands in for an absent price bound so that two filters
// with equal fields always encode to the same key.
const keyPlaceholder = "-"

// Key returns the canonical identity string for the filter:
// location:keyword:min:max, with "-" for absent bounds.
func (f Filter) Key() string {
	return strings.Join([]string{
		f.Location,
		f.Keyword,
		boundString(f.MinPrice),
		boundString(f.MaxPrice),
	}, ":")
}

func boundString(b *int) string {
	if b == nil {
		return keyPlaceholder
	}
	return strconv.Itoa(*b)
}

func (f Filter) String() string {
	return fmt.Sprintf("filter(%s %q %s..%s)",
		f.Location, f.Keyword, boundString(f.MinPrice), boundString(f.MaxPrice))
}
