// Package sqlite implements the vote and counter storages on an embedded
// SQLite file, for single-node deployments that still need votes to survive
// a restart.
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrcliffo/nfl-market-pulse/logging"
)

type voteRow struct {
	ID        string    `gorm:"primaryKey"`
	MarketID  string    `gorm:"index;not null"`
	Token     string    `gorm:"not null"`
	Choice    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (voteRow) TableName() string { return "votes" }

// counterRow is keyed on (namespace, market_id, token); token is empty for
// market counters.
type counterRow struct {
	Namespace  string `gorm:"primaryKey"`
	MarketID   string `gorm:"primaryKey"`
	Token      string `gorm:"primaryKey"`
	YesCount   int64  `gorm:"not null"`
	NoCount    int64  `gorm:"not null"`
	TotalCount int64  `gorm:"not null"`
	UpdatedAt  time.Time
}

func (counterRow) TableName() string { return "vote_counters" }

// Open connects to the SQLite file at path, creating it and its directory if
// needed, and migrates the schema. Writes go through a single connection.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create DB directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&voteRow{}, &counterRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// gormConfig logs slow queries and errors through logrus. Missing rows are an
// expected outcome of Get and Stats and are not logged.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(logging.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
