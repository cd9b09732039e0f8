package invoice

import (
	"context"

	"github.com/librix/invoicing/internal/types"
)

// Repository provides access to invoices held by the storage service
type Repository interface {
	GetByID(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
}

// LineRepository provides access to invoice lines held by the storage
// service
type LineRepository interface {
	List(ctx context.Context, filter *types.QueryFilter) (*LineCollection, error)
	GetByID(ctx context.Context, id string) (*InvoiceLine, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) ([]*InvoiceLine, error)
	Create(ctx context.Context, line *InvoiceLine) (*InvoiceLine, error)
	Update(ctx context.Context, line *InvoiceLine) error
	Delete(ctx context.Context, id string) error
}

// SequenceRepository issues the per invoice line number sequence. Each
// call consumes one token; tokens are never reissued, so a creation
// that fails after this call leaves a gap in the numbering.
type SequenceRepository interface {
	NextSequenceNumber(ctx context.Context, invoiceID string) (string, error)
}
