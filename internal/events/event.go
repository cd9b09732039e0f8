package events

import (
	"time"

	"github.com/librix/invoicing/internal/domain/invoice"
	ierr "github.com/librix/invoicing/internal/errors"
)

// InvoiceTotalsEvent signals that an invoice's aggregate totals must
// be recalculated. It carries either a full invoice snapshot or a bare
// invoice id; delivery is at most once from the producer's view.
type InvoiceTotalsEvent struct {
	ID         string           `json:"id"`
	TenantID   string           `json:"tenantId"`
	Invoice    *invoice.Invoice `json:"invoice,omitempty"`
	InvoiceID  string           `json:"invoiceId,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// TargetInvoiceID returns the invoice the event refers to regardless
// of which of the two shapes it carries.
func (e *InvoiceTotalsEvent) TargetInvoiceID() string {
	if e.Invoice != nil {
		return e.Invoice.ID
	}
	return e.InvoiceID
}

// Validate rejects events carrying neither shape
func (e *InvoiceTotalsEvent) Validate() error {
	if e.TargetInvoiceID() == "" {
		return ierr.NewError("invoice totals event validation failed").
			WithHint("Either an invoice snapshot or an invoice id is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
