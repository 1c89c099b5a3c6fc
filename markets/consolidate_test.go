package markets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	events   map[string]*Event
	failures map[string]error
	delay    map[string]time.Duration

	mu       sync.Mutex
	inFlight int
	peak     int
	calls    atomic.Int32
}

func (f *fakeFetcher) FetchEvent(ctx context.Context, slug string) (*Event, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if d := f.delay[slug]; d > 0 {
		time.Sleep(d)
	}
	if err := f.failures[slug]; err != nil {
		return nil, err
	}
	return f.events[slug], nil
}

func market(id string, active, closed bool) Market {
	return Market{ID: id, Active: active, Closed: closed}
}

func candidates(slugs ...string) []Event {
	out := make([]Event, len(slugs))
	for i, s := range slugs {
		out[i] = Event{Slug: s, Title: "candidate " + s}
	}
	return out
}

func ids(ms []Market) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestConsolidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Shared market keeps the first event", func(t *testing.T) {
		f := &fakeFetcher{events: map[string]*Event{
			"a": {ID: "ea", Title: "A detail", Slug: "a", Markets: []Market{market("X", true, false)}},
			"b": {ID: "eb", Title: "B detail", Slug: "b", Markets: []Market{market("X", true, false), market("Y", true, false)}},
		}}

		got := NewConsolidator(f, 4).Consolidate(ctx, candidates("a", "b"))
		assert.Equal(t, []string{"X", "Y"}, ids(got))
		require.Len(t, got[0].Events, 1)
		assert.Equal(t, "ea", got[0].Events[0].ID)
		assert.Equal(t, "A detail", got[0].Events[0].Title, "stamp comes from the detail, not the candidate")
		assert.Equal(t, "eb", got[1].Events[0].ID)
	})

	t.Run("One failed detail does not abort the rest", func(t *testing.T) {
		f := &fakeFetcher{
			events: map[string]*Event{
				"a": {ID: "ea", Markets: []Market{market("1", true, false)}},
				"c": {ID: "ec", Markets: []Market{market("3", true, false)}},
			},
			failures: map[string]error{"b": errors.New("boom")},
		}

		got := NewConsolidator(f, 4).Consolidate(ctx, candidates("a", "b", "c"))
		assert.Equal(t, []string{"1", "3"}, ids(got))
	})

	t.Run("Empty detail contributes nothing", func(t *testing.T) {
		f := &fakeFetcher{events: map[string]*Event{
			"a": {ID: "ea"},
			"b": {ID: "eb", Markets: []Market{market("2", true, false)}},
		}}

		got := NewConsolidator(f, 4).Consolidate(ctx, candidates("a", "missing", "b"))
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("Inactive and closed markets are dropped", func(t *testing.T) {
		f := &fakeFetcher{events: map[string]*Event{
			"a": {ID: "ea", Markets: []Market{
				market("open", true, false),
				market("inactive", false, false),
				market("closed", true, true),
				market("both", false, true),
			}},
		}}

		got := NewConsolidator(f, 4).Consolidate(ctx, candidates("a"))
		assert.Equal(t, []string{"open"}, ids(got))
	})

	t.Run("Dedup happens before the active filter", func(t *testing.T) {
		f := &fakeFetcher{events: map[string]*Event{
			"a": {ID: "ea", Markets: []Market{market("X", true, true)}},
			"b": {ID: "eb", Markets: []Market{market("X", true, false)}},
		}}

		got := NewConsolidator(f, 4).Consolidate(ctx, candidates("a", "b"))
		assert.Empty(t, got)
	})

	t.Run("Markets without an id are dropped", func(t *testing.T) {
		f := &fakeFetcher{events: map[string]*Event{
			"a": {ID: "ea", Markets: []Market{market("", true, false), market("1", true, false), market("", true, false)}},
		}}

		got := NewConsolidator(f, 4).Consolidate(ctx, candidates("a"))
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("Order follows candidates, not completion", func(t *testing.T) {
		f := &fakeFetcher{
			events: map[string]*Event{
				"slow": {ID: "1", Markets: []Market{market("s", true, false)}},
				"fast": {ID: "2", Markets: []Market{market("f", true, false)}},
			},
			delay: map[string]time.Duration{"slow": 30 * time.Millisecond},
		}

		got := NewConsolidator(f, 4).Consolidate(ctx, candidates("slow", "fast"))
		assert.Equal(t, []string{"s", "f"}, ids(got))
	})

	t.Run("Fan-out is bounded", func(t *testing.T) {
		f := &fakeFetcher{
			events: map[string]*Event{},
			delay:  map[string]time.Duration{},
		}
		slugs := make([]string, 12)
		for i := range slugs {
			slugs[i] = string(rune('a' + i))
			f.delay[slugs[i]] = 10 * time.Millisecond
		}

		got := NewConsolidator(f, 3).Consolidate(ctx, candidates(slugs...))
		assert.Empty(t, got)
		assert.Equal(t, int32(12), f.calls.Load())
		assert.LessOrEqual(t, f.peak, 3)
	})

	t.Run("No candidates", func(t *testing.T) {
		got := NewConsolidator(&fakeFetcher{}, 0).Consolidate(ctx, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
