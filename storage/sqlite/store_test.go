package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/storage"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "data", "votes.db"))
	require.NoError(t, err, "failed to open test db")

	t.Cleanup(func() {
		_ = Close(db)
	})
	return db
}

func TestVoteStore_CreateGetAllStats(t *testing.T) {
	store := NewVoteStore(setupTestDB(t))
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Nil(t, stats.Latest)

	for i, id := range []string{"a", "b", "c"} {
		choice := storage.ChoiceYes
		if i == 1 {
			choice = storage.ChoiceNo
		}
		v := &storage.Vote{ID: id, MarketID: "m-1", Token: "t-1", Choice: choice}
		require.NoError(t, store.Create(ctx, v))
		assert.False(t, v.CreatedAt.IsZero())
	}

	votes, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, votes, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{votes[0].ID, votes[1].ID, votes[2].ID})
	assert.Equal(t, storage.ChoiceNo, votes[1].Choice)

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	require.NotNil(t, stats.Latest)
}

func TestVoteStore_RejectsInvalidChoice(t *testing.T) {
	store := NewVoteStore(setupTestDB(t))

	err := store.Create(context.Background(), &storage.Vote{ID: "x", MarketID: "m", Token: "t", Choice: "maybe"})
	assert.ErrorIs(t, err, storage.ErrInvalidChoice)
}

func TestCounterStore_IncrementAndRead(t *testing.T) {
	store := NewCounterStore(setupTestDB(t))
	ctx := context.Background()
	key := storage.MarketKey("m-1")

	c, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, storage.Counters{}, c)

	all, err := store.GetAll(ctx, storage.NamespaceMarket)
	require.NoError(t, err)
	assert.Empty(t, all, "Get must not create a row")

	c, err = store.Increment(ctx, key, storage.ChoiceYes)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Yes)
	assert.Equal(t, int64(1), c.Total)

	c, err = store.Increment(ctx, key, storage.ChoiceNo)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Yes)
	assert.Equal(t, int64(1), c.No)
	assert.Equal(t, int64(2), c.Total)

	first, err := store.Get(ctx, key)
	require.NoError(t, err)
	second, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, first, second, "reads without writes are idempotent")

	_, err = store.Increment(ctx, storage.WindowKey("m-1", "t-1"), storage.ChoiceNo)
	require.NoError(t, err)

	windows, err := store.GetAll(ctx, storage.NamespaceWindow)
	require.NoError(t, err)
	require.Contains(t, windows, storage.WindowKey("m-1", "t-1"))
	assert.Equal(t, int64(1), windows[storage.WindowKey("m-1", "t-1")].No)

	markets, err := store.GetAll(ctx, storage.NamespaceMarket)
	require.NoError(t, err)
	assert.Len(t, markets, 1)

	_, err = store.Increment(ctx, storage.WindowKey("a:b", "c"), storage.ChoiceYes)
	require.NoError(t, err)
	c, err = store.Increment(ctx, storage.WindowKey("a", "b:c"), storage.ChoiceYes)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Total, "market and token are separate key columns")
}

func TestCounterStore_ConcurrentIncrements(t *testing.T) {
	store := NewCounterStore(setupTestDB(t))
	ctx := context.Background()
	key := storage.MarketKey("hot")

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Increment(ctx, key, storage.ChoiceYes)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), c.Yes)
	assert.Equal(t, int64(writers), c.Total)
}

func TestMissingRowsAreNotLogged(t *testing.T) {
	var buf bytes.Buffer
	out := logging.Log.Out
	logging.Log.SetOutput(&buf)
	t.Cleanup(func() { logging.Log.SetOutput(out) })

	db := setupTestDB(t)
	ctx := context.Background()

	_, err := NewCounterStore(db).Get(ctx, storage.MarketKey("nope"))
	require.NoError(t, err)
	_, err = NewVoteStore(db).Stats(ctx)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "record not found")
}
