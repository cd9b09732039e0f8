package invoice

import (
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceLine represents a single line of an invoice. The invoice id
// and the generated line number never change after creation.
type InvoiceLine struct {
	ID                string          `json:"id"`
	InvoiceID         string          `json:"invoiceId"`
	InvoiceLineNumber string          `json:"invoiceLineNumber"`
	Description       string          `json:"description,omitempty"`
	POLineID          *string         `json:"poLineId,omitempty"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Quantity          decimal.Decimal `json:"quantity"`
	SubTotal          decimal.Decimal `json:"subTotal"`
	AdjustmentsTotal  decimal.Decimal `json:"adjustmentsTotal"`
	Total             decimal.Decimal `json:"total"`
	Adjustments       []Adjustment    `json:"adjustments,omitempty"`
	Comment           string          `json:"comment,omitempty"`
}

// LineCollection is a page of invoice lines as served by storage
type LineCollection struct {
	InvoiceLines []*InvoiceLine `json:"invoiceLines"`
	TotalRecords int            `json:"totalRecords"`
}

// SequenceNumber is a one time token issued by the storage service per
// invoice, used to build the human readable line number.
type SequenceNumber struct {
	SequenceNumber string `json:"sequenceNumber"`
}

// Validate validates the invoice line
func (l *InvoiceLine) Validate() error {
	if l.InvoiceID == "" {
		return ierr.NewError("invoice line validation failed").
			WithHint("Invoice id is required").
			Mark(ierr.ErrValidation)
	}
	if err := types.ValidateUUID(l.InvoiceID); err != nil {
		return err
	}
	if l.UnitPrice.IsNegative() {
		return ierr.NewError("invoice line validation failed").
			WithHint("Unit price must be non negative").
			Mark(ierr.ErrValidation)
	}
	if l.Quantity.IsNegative() {
		return ierr.NewError("invoice line validation failed").
			WithHint("Quantity must be non negative").
			Mark(ierr.ErrValidation)
	}
	for _, adj := range l.Adjustments {
		if err := adj.Validate(); err != nil {
			return err
		}
	}
	return nil
}
