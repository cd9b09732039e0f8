package testutil

import (
	"context"
	"strconv"
	"sync"
)

// InMemorySequenceStore implements invoice.SequenceRepository for
// tests. Each call consumes the next token for the invoice, like the
// storage service's counter.
type InMemorySequenceStore struct {
	mu        sync.Mutex
	sequences map[string]int
	calls     int
}

func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{
		sequences: make(map[string]int),
	}
}

func (s *InMemorySequenceStore) NextSequenceNumber(ctx context.Context, invoiceID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences[invoiceID]++
	s.calls++
	return strconv.Itoa(s.sequences[invoiceID]), nil
}

// Calls returns the number of tokens issued so far
func (s *InMemorySequenceStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Clear resets all counters
func (s *InMemorySequenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences = make(map[string]int)
	s.calls = 0
}
