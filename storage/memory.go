package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryVoteStorage keeps the vote log in process memory. Everything is lost on restart.
type MemoryVoteStorage struct {
	mu    sync.RWMutex
	votes []*Vote
	now   func() time.Time
}

func NewMemoryVoteStorage() *MemoryVoteStorage {
	return &MemoryVoteStorage{now: time.Now}
}

var _ VoteStorage = (*MemoryVoteStorage)(nil)

// Create appends the vote and stamps CreatedAt. Timestamps never go backwards
// in insertion order, even if the wall clock does.
func (s *MemoryVoteStorage) Create(_ context.Context, vote *Vote) error {
	if !vote.Choice.Valid() {
		return ErrInvalidChoice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now().UTC()
	if n := len(s.votes); n > 0 && created.Before(s.votes[n-1].CreatedAt) {
		created = s.votes[n-1].CreatedAt
	}
	vote.CreatedAt = created

	stored := *vote
	s.votes = append(s.votes, &stored)
	return nil
}

func (s *MemoryVoteStorage) GetAll(_ context.Context) ([]*Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Vote, 0, len(s.votes))
	for _, v := range s.votes {
		c := *v
		out = append(out, &c)
	}
	return out, nil
}

func (s *MemoryVoteStorage) Stats(_ context.Context) (VoteStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := VoteStats{Count: int64(len(s.votes))}
	if n := len(s.votes); n > 0 {
		latest := s.votes[n-1].CreatedAt
		stats.Latest = &latest
	}
	return stats, nil
}

// MemoryCounterStorage is the volatile counter store. One mutex serialises all
// increments so concurrent requests for the same key never lose an update.
type MemoryCounterStorage struct {
	mu       sync.RWMutex
	counters map[CounterKey]Counters
	now      func() time.Time
}

func NewMemoryCounterStorage() *MemoryCounterStorage {
	return &MemoryCounterStorage{
		counters: make(map[CounterKey]Counters),
		now:      time.Now,
	}
}

var _ CounterStorage = (*MemoryCounterStorage)(nil)

func (s *MemoryCounterStorage) Increment(_ context.Context, key CounterKey, choice Choice) (Counters, error) {
	if !choice.Valid() {
		return Counters{}, ErrInvalidChoice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.counters[key]
	switch choice {
	case ChoiceYes:
		c.Yes++
	case ChoiceNo:
		c.No++
	}
	c.Total++
	c.UpdatedAt = s.now().UTC()
	s.counters[key] = c
	return c, nil
}

func (s *MemoryCounterStorage) Get(_ context.Context, key CounterKey) (Counters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.counters[key], nil
}

func (s *MemoryCounterStorage) GetAll(_ context.Context, namespace Namespace) (map[CounterKey]Counters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[CounterKey]Counters)
	for k, c := range s.counters {
		if k.Namespace == namespace {
			out[k] = c
		}
	}
	return out, nil
}
