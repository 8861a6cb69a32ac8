package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"

	"github.com/kestrelrobotics/matchbook/pkg/metrics"
)

// recordKey identifies one robot's record in one match; a re-submission
// with the same key replaces the earlier record.
type recordKey struct {
	matchKey   string
	teamNumber int
}

// MemStore is the in-memory Store. Reads return copies, so callers hold
// immutable snapshots and aggregation needs no locking of its own.
type MemStore struct {
	mu      sync.RWMutex
	records map[recordKey]model.MatchRecord
	order   []recordKey // insertion order for stable listings
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[recordKey]model.MatchRecord),
	}
}

// Put stores rec, replacing any prior record for the same match and team.
func (s *MemStore) Put(_ context.Context, rec model.MatchRecord) error {
	if rec.MatchKey == "" || rec.TeamNumber <= 0 {
		return ErrInvalidRecord
	}
	key := recordKey{matchKey: rec.MatchKey, teamNumber: rec.TeamNumber}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[key]; !exists {
		s.order = append(s.order, key)
	}
	s.records[key] = rec
	metrics.UpdateRecordsTotal(len(s.records))
	return nil
}

// TeamRecords returns the team's records in insertion order.
func (s *MemStore) TeamRecords(_ context.Context, teamNumber int) ([]model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MatchRecord, 0, 8)
	for _, key := range s.order {
		if key.teamNumber == teamNumber {
			out = append(out, s.records[key])
		}
	}
	return out, nil
}

// MatchRecords returns all records for a match across both alliances.
func (s *MemStore) MatchRecords(_ context.Context, matchKey string) ([]model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MatchRecord, 0, 6)
	for _, key := range s.order {
		if key.matchKey == matchKey {
			out = append(out, s.records[key])
		}
	}
	return out, nil
}

// Teams returns the distinct team numbers with records, ascending.
func (s *MemStore) Teams(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int]struct{})
	var teams []int
	for key := range s.records {
		if _, ok := seen[key.teamNumber]; !ok {
			seen[key.teamNumber] = struct{}{}
			teams = append(teams, key.teamNumber)
		}
	}
	sort.Ints(teams)
	return teams, nil
}

// Count returns the number of stored records.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
