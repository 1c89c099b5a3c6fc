package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrcliffo/nfl-market-pulse/storage"
)

type CounterStore struct {
	db *gorm.DB
}

func NewCounterStore(db *gorm.DB) *CounterStore {
	return &CounterStore{db: db}
}

var _ storage.CounterStorage = (*CounterStore)(nil)

func (s *CounterStore) Increment(ctx context.Context, key storage.CounterKey, choice storage.Choice) (storage.Counters, error) {
	now := time.Now().UTC()
	row := counterRow{
		Namespace:  string(key.Namespace),
		MarketID:   key.MarketID,
		Token:      key.Token,
		TotalCount: 1,
		UpdatedAt:  now,
	}
	switch choice {
	case storage.ChoiceYes:
		row.YesCount = 1
	case storage.ChoiceNo:
		row.NoCount = 1
	default:
		return storage.Counters{}, storage.ErrInvalidChoice
	}

	var out counterRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "namespace"}, {Name: "market_id"}, {Name: "token"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"yes_count":   gorm.Expr("yes_count + excluded.yes_count"),
				"no_count":    gorm.Expr("no_count + excluded.no_count"),
				"total_count": gorm.Expr("total_count + 1"),
				"updated_at":  now,
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("namespace = ? AND market_id = ? AND token = ?", row.Namespace, row.MarketID, row.Token).Take(&out).Error
	})
	if err != nil {
		return storage.Counters{}, err
	}
	return toCounters(out), nil
}

func (s *CounterStore) Get(ctx context.Context, key storage.CounterKey) (storage.Counters, error) {
	var row counterRow
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND market_id = ? AND token = ?", string(key.Namespace), key.MarketID, key.Token).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.Counters{}, nil
	}
	if err != nil {
		return storage.Counters{}, err
	}
	return toCounters(row), nil
}

func (s *CounterStore) GetAll(ctx context.Context, namespace storage.Namespace) (map[storage.CounterKey]storage.Counters, error) {
	var rows []counterRow
	if err := s.db.WithContext(ctx).Where("namespace = ?", string(namespace)).Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[storage.CounterKey]storage.Counters, len(rows))
	for _, r := range rows {
		key := storage.CounterKey{Namespace: namespace, MarketID: r.MarketID, Token: r.Token}
		result[key] = toCounters(r)
	}
	return result, nil
}

func toCounters(r counterRow) storage.Counters {
	return storage.Counters{
		Yes:       r.YesCount,
		No:        r.NoCount,
		Total:     r.TotalCount,
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}
