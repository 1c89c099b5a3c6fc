package postgres

import (
	"context"
	"fmt"

	"github.com/mrcliffo/nfl-market-pulse/storage"
)

// CounterStore implements storage.CounterStorage using PostgreSQL.
type CounterStore struct {
	pool *Pool
}

func NewCounterStore(pool *Pool) *CounterStore {
	return &CounterStore{pool: pool}
}

var _ storage.CounterStorage = (*CounterStore)(nil)

// Increment is one upsert statement, so concurrent writers never lose an update.
func (s *CounterStore) Increment(ctx context.Context, key storage.CounterKey, choice storage.Choice) (storage.Counters, error) {
	var yes, no int64
	switch choice {
	case storage.ChoiceYes:
		yes = 1
	case storage.ChoiceNo:
		no = 1
	default:
		return storage.Counters{}, storage.ErrInvalidChoice
	}

	query := `
		INSERT INTO vote_counters (namespace, market_id, token, yes_count, no_count, total_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, NOW())
		ON CONFLICT (namespace, market_id, token) DO UPDATE SET
			yes_count = vote_counters.yes_count + EXCLUDED.yes_count,
			no_count = vote_counters.no_count + EXCLUDED.no_count,
			total_count = vote_counters.total_count + 1,
			updated_at = EXCLUDED.updated_at
		RETURNING yes_count, no_count, total_count, updated_at
	`

	var c storage.Counters
	err := s.pool.QueryRow(ctx, query, string(key.Namespace), key.MarketID, key.Token, yes, no).
		Scan(&c.Yes, &c.No, &c.Total, &c.UpdatedAt)
	if err != nil {
		return storage.Counters{}, fmt.Errorf("increment %s: %w", key, err)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (s *CounterStore) Get(ctx context.Context, key storage.CounterKey) (storage.Counters, error) {
	query := `
		SELECT yes_count, no_count, total_count, updated_at
		FROM vote_counters
		WHERE namespace = $1 AND market_id = $2 AND token = $3
	`

	var c storage.Counters
	err := s.pool.QueryRow(ctx, query, string(key.Namespace), key.MarketID, key.Token).
		Scan(&c.Yes, &c.No, &c.Total, &c.UpdatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return storage.Counters{}, nil
		}
		return storage.Counters{}, fmt.Errorf("get %s: %w", key, err)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (s *CounterStore) GetAll(ctx context.Context, namespace storage.Namespace) (map[storage.CounterKey]storage.Counters, error) {
	query := `
		SELECT market_id, token, yes_count, no_count, total_count, updated_at
		FROM vote_counters
		WHERE namespace = $1
	`

	rows, err := s.pool.Query(ctx, query, string(namespace))
	if err != nil {
		return nil, fmt.Errorf("query %s counters: %w", namespace, err)
	}
	defer rows.Close()

	result := make(map[storage.CounterKey]storage.Counters)
	for rows.Next() {
		var (
			key = storage.CounterKey{Namespace: namespace}
			c   storage.Counters
		)
		if err := rows.Scan(&key.MarketID, &key.Token, &c.Yes, &c.No, &c.Total, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan counter: %w", err)
		}
		c.UpdatedAt = c.UpdatedAt.UTC()
		result[key] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counters: %w", err)
	}
	return result, nil
}
