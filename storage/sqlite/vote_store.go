package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrcliffo/nfl-market-pulse/storage"
)

type VoteStore struct {
	db *gorm.DB
}

func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db}
}

var _ storage.VoteStorage = (*VoteStore)(nil)

func (s *VoteStore) Create(ctx context.Context, vote *storage.Vote) error {
	if !vote.Choice.Valid() {
		return storage.ErrInvalidChoice
	}

	row := voteRow{
		ID:       vote.ID,
		MarketID: vote.MarketID,
		Token:    vote.Token,
		Choice:   string(vote.Choice),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	vote.CreatedAt = row.CreatedAt.UTC()
	return nil
}

func (s *VoteStore) GetAll(ctx context.Context) ([]*storage.Vote, error) {
	var rows []voteRow
	if err := s.db.WithContext(ctx).Order("created_at ASC, rowid ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	votes := make([]*storage.Vote, 0, len(rows))
	for _, r := range rows {
		votes = append(votes, toVote(r))
	}
	return votes, nil
}

func (s *VoteStore) Stats(ctx context.Context) (storage.VoteStats, error) {
	var stats storage.VoteStats
	if err := s.db.WithContext(ctx).Model(&voteRow{}).Count(&stats.Count).Error; err != nil {
		return storage.VoteStats{}, err
	}

	var latest voteRow
	err := s.db.WithContext(ctx).Order("created_at DESC, rowid DESC").Take(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stats, nil
	}
	if err != nil {
		return storage.VoteStats{}, err
	}
	t := latest.CreatedAt.UTC()
	stats.Latest = &t
	return stats, nil
}

func toVote(r voteRow) *storage.Vote {
	return &storage.Vote{
		ID:        r.ID,
		MarketID:  r.MarketID,
		Token:     r.Token,
		Choice:    storage.Choice(r.Choice),
		CreatedAt: r.CreatedAt.UTC(),
	}
}
