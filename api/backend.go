package api

import (
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/storage"
	"github.com/mrcliffo/nfl-market-pulse/storage/postgres"
	"github.com/mrcliffo/nfl-market-pulse/storage/sqlite"
)

// Backend is one storage choice: the vote log, the counters and how to let go
// of them at shutdown.
type Backend struct {
	Name     string
	Votes    storage.VoteStorage
	Counters storage.CounterStorage
	close    func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend builds the storage selected by storage.backend.
func OpenBackend(ctx context.Context, conf StorageConfig) (*Backend, error) {
	switch conf.Backend {
	case BackendMemory, "":
		logging.Log.Warn("STORAGE: using in-memory storage, votes are lost on restart")
		return &Backend{
			Name:     BackendMemory,
			Votes:    storage.NewMemoryVoteStorage(),
			Counters: storage.NewMemoryCounterStorage(),
		}, nil

	case BackendDynamoDB:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			if conf.DynamoEndpoint != "" {
				o.BaseEndpoint = aws.String(conf.DynamoEndpoint)
			}
		})
		logging.Log.Infof("STORAGE: using DynamoDB tables %s and %s", conf.TableNameVotes, conf.TableNameCounters)
		return &Backend{
			Name:     BackendDynamoDB,
			Votes:    &storage.DynamoVoteStorage{Client: client, TableName: conf.TableNameVotes},
			Counters: &storage.DynamoCounterStorage{Client: client, TableName: conf.TableNameCounters},
		}, nil

	case BackendPostgres:
		if conf.PostgresDSN == "" {
			return nil, fmt.Errorf("storage.postgresDSN is required for the postgres backend")
		}
		pool, err := postgres.NewPool(ctx, conf.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logging.Log.Info("STORAGE: using PostgreSQL")
		return &Backend{
			Name:     BackendPostgres,
			Votes:    postgres.NewVoteStore(pool),
			Counters: postgres.NewCounterStore(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case BackendSQLite:
		db, err := sqlite.Open(conf.SQLitePath)
		if err != nil {
			return nil, err
		}
		logging.Log.Infof("STORAGE: using SQLite at %s", conf.SQLitePath)
		return &Backend{
			Name:     BackendSQLite,
			Votes:    sqlite.NewVoteStore(db),
			Counters: sqlite.NewCounterStore(db),
			close:    func() error { return sqlite.Close(db) },
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", storage.ErrUnknownBackend, conf.Backend)
}
