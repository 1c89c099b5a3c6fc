package markets

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// FetchCandidateEvents lists active, open events (one page of pageSize) and
// keeps those whose title contains any keyword, ignoring case.
func (c *Client) FetchCandidateEvents(ctx context.Context) ([]Event, error) {
	query := url.Values{}
	query.Set("active", "true")
	query.Set("closed", "false")
	query.Set("limit", strconv.Itoa(c.pageSize))

	var events []Event
	if err := c.get(ctx, "events", c.gammaURL, "/events", query, &events); err != nil {
		return nil, err
	}

	candidates := make([]Event, 0, len(events))
	for _, e := range events {
		if matchesAny(e.Title, c.keywords) {
			candidates = append(candidates, e)
		}
	}

	return candidates, nil
}

// FetchEvent fetches one event with its markets.
func (c *Client) FetchEvent(ctx context.Context, slug string) (*Event, error) {
	var event Event
	if err := c.get(ctx, "event", c.gammaURL, "/events/slug/"+url.PathEscape(slug), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ActiveMarkets is the full feed: candidate events consolidated into markets.
func (c *Client) ActiveMarkets(ctx context.Context) ([]Market, error) {
	events, err := c.FetchCandidateEvents(ctx)
	if err != nil {
		return nil, err
	}

	markets := NewConsolidator(c, c.maxConcurrency).Consolidate(ctx, events)
	c.metrics.SetMarketsConsolidated(len(markets))
	return markets, nil
}

func matchesAny(title string, keywords []string) bool {
	title = strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(title, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
