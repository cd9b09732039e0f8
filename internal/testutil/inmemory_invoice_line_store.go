package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/librix/invoicing/internal/domain/invoice"
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/types"
)

// InMemoryInvoiceLineStore implements invoice.LineRepository for tests.
// It counts mutating calls so tests can assert that rejected
// operations never reached storage.
type InMemoryInvoiceLineStore struct {
	mu          sync.RWMutex
	lines       map[string]*invoice.InvoiceLine
	createCalls int
	updateCalls int
	deleteCalls int
}

func NewInMemoryInvoiceLineStore() *InMemoryInvoiceLineStore {
	return &InMemoryInvoiceLineStore{
		lines: make(map[string]*invoice.InvoiceLine),
	}
}

func (s *InMemoryInvoiceLineStore) List(ctx context.Context, filter *types.QueryFilter) (*invoice.LineCollection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*invoice.InvoiceLine
	for _, line := range s.lines {
		if matchesQuery(line, filter.GetQuery()) {
			copied := *line
			matched = append(matched, &copied)
		}
	}

	total := len(matched)
	offset := filter.GetOffset()
	limit := filter.GetLimit()
	if offset > len(matched) {
		matched = nil
	} else {
		matched = matched[offset:]
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return &invoice.LineCollection{
		InvoiceLines: matched,
		TotalRecords: total,
	}, nil
}

func (s *InMemoryInvoiceLineStore) GetByID(ctx context.Context, id string) (*invoice.InvoiceLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	line, ok := s.lines[id]
	if !ok {
		return nil, ierr.NewError("invoice line not found").
			WithHintf("Invoice line %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *line
	return &copied, nil
}

func (s *InMemoryInvoiceLineStore) GetByInvoiceID(ctx context.Context, invoiceID string) ([]*invoice.InvoiceLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*invoice.InvoiceLine
	for _, line := range s.lines {
		if line.InvoiceID == invoiceID {
			copied := *line
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (s *InMemoryInvoiceLineStore) Create(ctx context.Context, line *invoice.InvoiceLine) (*invoice.InvoiceLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[line.ID]; ok {
		return nil, ierr.NewError("invoice line already exists").
			WithHintf("Invoice line %s already exists", line.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	copied := *line
	s.lines[line.ID] = &copied
	s.createCalls++

	stored := copied
	return &stored, nil
}

func (s *InMemoryInvoiceLineStore) Update(ctx context.Context, line *invoice.InvoiceLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[line.ID]; !ok {
		return ierr.NewError("invoice line not found").
			WithHintf("Invoice line %s was not found", line.ID).
			Mark(ierr.ErrNotFound)
	}
	copied := *line
	s.lines[line.ID] = &copied
	s.updateCalls++
	return nil
}

func (s *InMemoryInvoiceLineStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[id]; !ok {
		return ierr.NewError("invoice line not found").
			WithHintf("Invoice line %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.lines, id)
	s.deleteCalls++
	return nil
}

// Add seeds an invoice line
func (s *InMemoryInvoiceLineStore) Add(line *invoice.InvoiceLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *line
	s.lines[line.ID] = &copied
}

// CreateCalls returns the number of create calls seen so far
func (s *InMemoryInvoiceLineStore) CreateCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createCalls
}

// UpdateCalls returns the number of update calls seen so far
func (s *InMemoryInvoiceLineStore) UpdateCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updateCalls
}

// DeleteCalls returns the number of delete calls seen so far
func (s *InMemoryInvoiceLineStore) DeleteCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deleteCalls
}

// Clear removes all lines and resets counters
func (s *InMemoryInvoiceLineStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[string]*invoice.InvoiceLine)
	s.createCalls = 0
	s.updateCalls = 0
	s.deleteCalls = 0
}

// matchesQuery supports the single query shape the services emit,
// `invoiceId==<id>`, plus the match everything empty query.
func matchesQuery(line *invoice.InvoiceLine, query string) bool {
	if query == "" {
		return true
	}
	if invoiceID, ok := strings.CutPrefix(query, "invoiceId=="); ok {
		return line.InvoiceID == invoiceID
	}
	return false
}
