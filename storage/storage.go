package storage

import "context"

type VoteStorage interface {
	Create(ctx context.Context, vote *Vote) error
	GetAll(ctx context.Context) ([]*Vote, error)
	Stats(ctx context.Context) (VoteStats, error)
}

// CounterStorage keeps the vote tallies. Increment is atomic per key and creates
// the row on first use; Get never creates a row and returns zero counters for
// unknown keys.
type CounterStorage interface {
	Increment(ctx context.Context, key CounterKey, choice Choice) (Counters, error)
	Get(ctx context.Context, key CounterKey) (Counters, error)
	GetAll(ctx context.Context, namespace Namespace) (map[CounterKey]Counters, error)
}
