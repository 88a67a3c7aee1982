// Package daangn fetches marketplace search results and extracts
// listings from the JSON-LD structured data embedded in the page.
// Posting timestamps only appear on each listing's detail page, so one
// extra request is made per listing in the snapshot.
package daangn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/logger"
	"github.com/seojun-dev/danwatch/internal/utils"
)

const (
	// userAgent keeps the site from serving the bot-detection page.
	userAgent = "Mozilla/5.0"

	// Placeholder bounds used when only one side of the price range is set.
	defaultMinPrice = 0
	defaultMaxPrice = 999999999
)

// Client fetches listing snapshots for a filter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

// New creates a client against baseURL (ex: "https://www.daangn.com").
func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     log,
	}
}

// Search returns the current snapshot of listings for the filter.
// A listing whose detail page could not be fetched or parsed keeps a
// nil PostedAt; callers decide what to do with un-timestamped listings.
func (c *Client) Search(ctx context.Context, f domain.Filter) ([]domain.Listing, error) {
	searchURL := c.searchURL(f)
	c.logger.Debug("fetching search results", logger.String("url", searchURL))

	doc, err := c.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	var listings []domain.Listing
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var list itemList
		if err := json.Unmarshal([]byte(s.Text()), &list); err != nil {
			// Pages carry unrelated ld+json blocks too; skip quietly.
			return
		}
		if list.Type != "ItemList" {
			return
		}
		for _, el := range list.Elements {
			listings = append(listings, c.toListing(ctx, el.Item, f))
		}
	})

	c.logger.Debug("extracted listings",
		logger.String("filter", f.Key()),
		logger.Int("count", len(listings)))

	return listings, nil
}

func (c *Client) toListing(ctx context.Context, it item, f domain.Filter) domain.Listing {
	id := it.ID
	if id == "" {
		id = it.URL
	}

	l := domain.Listing{
		ID:            id,
		Title:         it.Name,
		Description:   it.Description,
		Price:         parsePrice(it.Offers.Price),
		Seller:        it.Offers.Seller.Name,
		Location:      f.Location,
		SearchKeyword: f.Keyword,
		URL:           it.URL,
	}

	if it.URL != "" {
		l.PostedAt = c.fetchPostedAt(ctx, it.URL)
	}
	return l
}

// fetchPostedAt reads the <time datetime> attribute off the listing's
// detail page. Returns nil on any failure; a missing timestamp only
// disqualifies this one listing.
func (c *Client) fetchPostedAt(ctx context.Context, detailURL string) *time.Time {
	doc, err := c.get(ctx, detailURL)
	if err != nil {
		c.logger.Warn("detail page fetch failed",
			logger.String("url", detailURL),
			logger.Error(err))
		return nil
	}

	raw, ok := doc.Find("time[datetime]").First().Attr("datetime")
	if !ok || raw == "" {
		c.logger.Warn("detail page missing datetime attribute",
			logger.String("url", detailURL))
		return nil
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.logger.Warn("unparseable datetime attribute",
			logger.String("url", detailURL),
			logger.String("datetime", raw),
			logger.Error(err))
		return nil
	}
	return &ts
}

func (c *Client) get(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// searchURL builds the search-results URL for the filter. Price bounds
// are encoded as min__max with site defaults for the absent side.
func (c *Client) searchURL(f domain.Filter) string {
	q := url.Values{}
	q.Set("in", f.Location)
	q.Set("search", f.Keyword)
	q.Set("only_on_sale", "true")

	if f.MinPrice != nil || f.MaxPrice != nil {
		minVal, maxVal := defaultMinPrice, defaultMaxPrice
		if f.MinPrice != nil {
			minVal = *f.MinPrice
		}
		if f.MaxPrice != nil {
			maxVal = *f.MaxPrice
		}
		q.Set("price", fmt.Sprintf("%d__%d", minVal, maxVal))
	}

	return c.baseURL + "/kr/buy-sell/?" + q.Encode()
}

// parsePrice normalizes the loosely-typed JSON-LD price to a
// non-negative integer amount of won. Anything unparseable becomes 0.
func parsePrice(v any) int {
	switch p := v.(type) {
	case float64:
		return int(p)
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}
