package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mrcliffo/nfl-market-pulse/storage"
)

// VoteStore implements storage.VoteStorage using PostgreSQL.
type VoteStore struct {
	pool *Pool
}

func NewVoteStore(pool *Pool) *VoteStore {
	return &VoteStore{pool: pool}
}

var _ storage.VoteStorage = (*VoteStore)(nil)

// Create inserts the vote; created_at is assigned by the database.
func (s *VoteStore) Create(ctx context.Context, vote *storage.Vote) error {
	if !vote.Choice.Valid() {
		return storage.ErrInvalidChoice
	}

	query := `
		INSERT INTO votes (id, market_id, token, choice)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	var created time.Time
	if err := s.pool.QueryRow(ctx, query, vote.ID, vote.MarketID, vote.Token, string(vote.Choice)).Scan(&created); err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	vote.CreatedAt = created.UTC()
	return nil
}

func (s *VoteStore) GetAll(ctx context.Context) ([]*storage.Vote, error) {
	query := `
		SELECT id, market_id, token, choice, created_at
		FROM votes
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	var votes []*storage.Vote
	for rows.Next() {
		var (
			v      storage.Vote
			choice string
		)
		if err := rows.Scan(&v.ID, &v.MarketID, &v.Token, &choice, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		v.Choice = storage.Choice(choice)
		v.CreatedAt = v.CreatedAt.UTC()
		votes = append(votes, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate votes: %w", err)
	}
	return votes, nil
}

func (s *VoteStore) Stats(ctx context.Context) (storage.VoteStats, error) {
	var (
		stats  storage.VoteStats
		latest *time.Time
	)
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*), MAX(created_at) FROM votes`).Scan(&stats.Count, &latest); err != nil {
		return storage.VoteStats{}, fmt.Errorf("vote stats: %w", err)
	}
	if latest != nil {
		t := latest.UTC()
		stats.Latest = &t
	}
	return stats, nil
}
