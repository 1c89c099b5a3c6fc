package voting

import (
	"context"
	"time"

	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/metrics"
	"github.com/mrcliffo/nfl-market-pulse/storage"
)

const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// Summary is the all-markets snapshot.
type Summary struct {
	Results        map[string]Results
	TotalVotes     int64
	MarketsTracked int
	LastUpdated    *time.Time
}

// Export is the raw dump for offline analysis. It is not paginated: every vote
// is loaded into memory, which is fine for the expected volume of one season.
type Export struct {
	ExportedAt       time.Time
	TotalVotes       int64
	Votes            []*storage.Vote
	Aggregates       map[string]Results
	WindowAggregates map[string]Results
}

type Health struct {
	Status         string
	Timestamp      time.Time
	TotalVotes     int64
	MarketsTracked int
	Storage        string
}

// Reporter serves the read-only views over the vote log and counters.
type Reporter struct {
	votes    storage.VoteStorage
	counters storage.CounterStorage
	backend  string
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewReporter(votes storage.VoteStorage, counters storage.CounterStorage, backend string, m *metrics.Metrics) *Reporter {
	return &Reporter{
		votes:    votes,
		counters: counters,
		backend:  backend,
		metrics:  m,
		now:      time.Now,
	}
}

// MarketResults never fails: unknown markets and unreadable stores both come
// back as zero results, since "no data" reads as "no votes yet".
func (r *Reporter) MarketResults(ctx context.Context, marketID string) Results {
	return Derive(r.read(ctx, storage.MarketKey(marketID)))
}

// WindowResults returns the window's results next to the market's all-time ones.
func (r *Reporter) WindowResults(ctx context.Context, marketID, token string) (window Results, allTime Results) {
	window = Derive(r.read(ctx, storage.WindowKey(marketID, token)))
	allTime = Derive(r.read(ctx, storage.MarketKey(marketID)))
	return window, allTime
}

func (r *Reporter) read(ctx context.Context, key storage.CounterKey) storage.Counters {
	c, err := r.counters.Get(ctx, key)
	if err != nil {
		logging.Log.Warnf("RESULTS: reading %s failed, reporting zero: %v", key, err)
		r.metrics.RecordStoreError("get_counters")
		return storage.Counters{}
	}
	return c
}

func (r *Reporter) AllResults(ctx context.Context) (*Summary, error) {
	markets, err := r.counters.GetAll(ctx, storage.NamespaceMarket)
	if err != nil {
		r.metrics.RecordStoreError("list_counters")
		return nil, &StoreError{Op: "load results", Err: err}
	}
	stats, err := r.votes.Stats(ctx)
	if err != nil {
		r.metrics.RecordStoreError("vote_stats")
		return nil, &StoreError{Op: "load results", Err: err}
	}

	return &Summary{
		Results:        deriveMarkets(markets),
		TotalVotes:     stats.Count,
		MarketsTracked: len(markets),
		LastUpdated:    stats.Latest,
	}, nil
}

func (r *Reporter) Export(ctx context.Context) (*Export, error) {
	votes, err := r.votes.GetAll(ctx)
	if err != nil {
		r.metrics.RecordStoreError("list_votes")
		return nil, &StoreError{Op: "export votes", Err: err}
	}
	markets, err := r.counters.GetAll(ctx, storage.NamespaceMarket)
	if err != nil {
		r.metrics.RecordStoreError("list_counters")
		return nil, &StoreError{Op: "export aggregates", Err: err}
	}
	windows, err := r.counters.GetAll(ctx, storage.NamespaceWindow)
	if err != nil {
		r.metrics.RecordStoreError("list_counters")
		return nil, &StoreError{Op: "export aggregates", Err: err}
	}

	if votes == nil {
		votes = []*storage.Vote{}
	}
	return &Export{
		ExportedAt:       r.now().UTC(),
		TotalVotes:       int64(len(votes)),
		Votes:            votes,
		Aggregates:       deriveMarkets(markets),
		WindowAggregates: deriveWindows(windows),
	}, nil
}

// Health reports "degraded" with zero totals when the store cannot be read.
func (r *Reporter) Health(ctx context.Context) Health {
	h := Health{
		Status:    HealthOK,
		Timestamp: r.now().UTC(),
		Storage:   r.backend,
	}

	stats, err := r.votes.Stats(ctx)
	if err != nil {
		logging.Log.Warnf("HEALTH: vote stats unavailable: %v", err)
		h.Status = HealthDegraded
		return h
	}
	markets, err := r.counters.GetAll(ctx, storage.NamespaceMarket)
	if err != nil {
		logging.Log.Warnf("HEALTH: market aggregates unavailable: %v", err)
		h.Status = HealthDegraded
		return h
	}

	h.TotalVotes = stats.Count
	h.MarketsTracked = len(markets)
	return h
}

func deriveMarkets(counters map[storage.CounterKey]storage.Counters) map[string]Results {
	out := make(map[string]Results, len(counters))
	for key, c := range counters {
		out[key.MarketID] = Derive(c)
	}
	return out
}

// deriveWindows labels each window "marketId:token" for the export. The label
// is for readers only; counters are never looked up by it.
func deriveWindows(counters map[storage.CounterKey]storage.Counters) map[string]Results {
	out := make(map[string]Results, len(counters))
	for key, c := range counters {
		out[key.MarketID+":"+key.Token] = Derive(c)
	}
	return out
}
