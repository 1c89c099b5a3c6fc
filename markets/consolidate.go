package markets

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mrcliffo/nfl-market-pulse/logging"
)

// EventFetcher loads one event's detail. *Client implements it.
type EventFetcher interface {
	FetchEvent(ctx context.Context, slug string) (*Event, error)
}

// Consolidator turns candidate events into a flat, deduplicated list of
// tradable markets.
type Consolidator struct {
	fetcher EventFetcher
	limit   int
}

func NewConsolidator(fetcher EventFetcher, limit int) *Consolidator {
	if limit <= 0 {
		limit = DefaultMaxConcurrency
	}
	return &Consolidator{fetcher: fetcher, limit: limit}
}

// Consolidate never fails. A failed detail fetch contributes no markets.
// Output follows candidate order regardless of which fetch finished first;
// a market listed under several events keeps the first event's stamp.
func (c *Consolidator) Consolidate(ctx context.Context, candidates []Event) []Market {
	details := make([]*Event, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, candidate := range candidates {
		g.Go(func() error {
			event, err := c.fetcher.FetchEvent(gctx, candidate.Slug)
			if err != nil {
				logging.Log.Warnf("MARKETS: skipping event %s: %v", candidate.Slug, err)
				return nil
			}
			details[i] = event
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	markets := make([]Market, 0)
	for _, event := range details {
		if event == nil {
			continue
		}
		stamp := []EventSummary{event.Summary()}
		for _, m := range event.Markets {
			if m.ID == "" {
				logging.Log.Warnf("MARKETS: event %s has a market without an id, skipping", event.Slug)
				continue
			}
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true

			if !m.Active || m.Closed {
				continue
			}
			m.Events = stamp
			markets = append(markets, m)
		}
	}

	return markets
}
