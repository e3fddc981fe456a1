// Package history keeps the in-memory record of past workflow iterations.
package history

import (
	"sync"

	"apichain/pkg/models"
)

// RecentLimit is the maximum number of records any reader is ever handed.
const RecentLimit = 20

// Store is an interface for recording and reading workflow history.
type Store interface {
	// Append adds a record to the history.
	Append(rec models.Record)
	// Recent returns up to n records, newest first.
	Recent(n int) []models.Record
	// Len reports how many records the history holds.
	Len() int
}

// MemoryStore is a mutex-guarded in-memory implementation of Store. It is
// written by the single workflow goroutine and read concurrently by the
// dashboard handlers. Records live for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a record to the history.
func (s *MemoryStore) Append(rec models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Recent returns up to n records, newest first.
func (s *MemoryStore) Recent(n int) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]models.Record, 0, n)
	for i := len(s.records) - 1; i >= len(s.records)-n; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Len reports how many records the history holds.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
