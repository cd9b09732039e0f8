package testutil

import (
	"context"
	"sync"

	"github.com/librix/invoicing/internal/domain/invoice"
	ierr "github.com/librix/invoicing/internal/errors"
)

// InMemoryInvoiceStore implements invoice.Repository for tests
type InMemoryInvoiceStore struct {
	mu          sync.RWMutex
	invoices    map[string]*invoice.Invoice
	updateCalls int
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (s *InMemoryInvoiceStore) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *inv
	return &copied, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[inv.ID]; !ok {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	copied := *inv
	s.invoices[inv.ID] = &copied
	s.updateCalls++
	return nil
}

// Add seeds an invoice
func (s *InMemoryInvoiceStore) Add(inv *invoice.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *inv
	s.invoices[inv.ID] = &copied
}

// UpdateCalls returns the number of update calls seen so far
func (s *InMemoryInvoiceStore) UpdateCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updateCalls
}

// Clear removes all invoices and resets counters
func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make(map[string]*invoice.Invoice)
	s.updateCalls = 0
}
