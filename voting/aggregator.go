package voting

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/metrics"
	"github.com/mrcliffo/nfl-market-pulse/storage"
)

// Receipt is what a voter gets back: the new vote id and the market's
// all-time results including that vote.
type Receipt struct {
	VoteID  string
	Results Results
}

// Aggregator records votes and keeps the market and window counters in step.
type Aggregator struct {
	votes    storage.VoteStorage
	counters storage.CounterStorage
	metrics  *metrics.Metrics
	newID    func() string
}

func NewAggregator(votes storage.VoteStorage, counters storage.CounterStorage, m *metrics.Metrics) *Aggregator {
	return &Aggregator{
		votes:    votes,
		counters: counters,
		metrics:  m,
		newID:    uuid.NewString,
	}
}

// Validate checks a vote without writing anything.
func Validate(token, marketID, choice string) error {
	var missing []string
	if strings.TrimSpace(token) == "" {
		missing = append(missing, "token")
	}
	if strings.TrimSpace(marketID) == "" {
		missing = append(missing, "marketId")
	}
	if choice == "" {
		missing = append(missing, "vote")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	if !storage.Choice(choice).Valid() {
		return &ValidationError{Message: `Vote must be "yes" or "no"`}
	}
	return nil
}

// SubmitVote validates and records one vote, then bumps the market counter and
// the (market, token) window counter.
//
// The two increments are not transactional. If the window increment fails after
// the market increment succeeded, the vote stands and the window counter stays
// one behind; this is logged and counted but not reported to the voter.
func (a *Aggregator) SubmitVote(ctx context.Context, token, marketID, choice string) (*Receipt, error) {
	if err := Validate(token, marketID, choice); err != nil {
		a.metrics.RecordRejection("validation")
		return nil, err
	}

	vote := &storage.Vote{
		ID:       a.newID(),
		Token:    token,
		MarketID: marketID,
		Choice:   storage.Choice(choice),
	}
	if err := a.votes.Create(ctx, vote); err != nil {
		logging.Log.Errorf("VOTE: failed to store vote %s for market %s: %v", vote.ID, marketID, err)
		a.metrics.RecordStoreError("create_vote")
		return nil, &StoreError{Op: "save vote", Err: err}
	}

	market, err := a.counters.Increment(ctx, storage.MarketKey(marketID), vote.Choice)
	if err != nil {
		logging.Log.Errorf("VOTE: vote %s stored but market aggregate %s not updated: %v", vote.ID, marketID, err)
		a.metrics.RecordStoreError("increment_market")
		return nil, &StoreError{Op: "update results", Err: err}
	}

	if _, err := a.counters.Increment(ctx, storage.WindowKey(marketID, token), vote.Choice); err != nil {
		logging.Log.Errorf("VOTE: window aggregate for market %s lags behind after vote %s: %v", marketID, vote.ID, err)
		a.metrics.RecordStoreError("increment_window")
		a.metrics.RecordWindowLag()
	}

	a.metrics.RecordVote(choice)
	logging.Log.Debugf("VOTE: recorded %s on market %s (total %d)", choice, marketID, market.Total)

	return &Receipt{VoteID: vote.ID, Results: Derive(market)}, nil
}
