package store

import (
	"sort"
	"sync"
	"time"

	"posinsight/internal/core/model"
	"posinsight/internal/util"
)

// Store owns the session's dataset: the time-sorted record collection
// every view queries. Loads replace the dataset wholesale; there are no
// partial updates. Snapshots are copy-on-write: a Load installs a fresh
// slice, so readers holding an earlier snapshot keep seeing it unchanged.
type Store struct {
	mu      sync.RWMutex
	records []model.TransactionRecord
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Load installs records as the new dataset, sorted by ascending timestamp.
// The input slice is copied; the caller may keep mutating its own copy.
func (s *Store) Load(records []model.TransactionRecord) {
	sorted := make([]model.TransactionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	s.mu.Lock()
	s.records = sorted
	s.mu.Unlock()

	util.LogDebugf("Dataset store loaded %d records", len(sorted))
}

// Snapshot returns the current dataset. The returned slice must be
// treated as read-only; it is never mutated by subsequent loads.
func (s *Store) Snapshot() []model.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Len reports the number of loaded records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// DateRange returns the timestamps of the first and last records. ok is
// false while the store is empty.
func (s *Store) DateRange() (min, max time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.records[0].Timestamp, s.records[len(s.records)-1].Timestamp, true
}
