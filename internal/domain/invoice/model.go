package invoice

import (
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents an invoice owned by the storage service. The
// orchestrator only ever holds a transient copy per operation.
type Invoice struct {
	ID               string              `json:"id"`
	FolioInvoiceNo   string              `json:"folioInvoiceNo"`
	Status           types.InvoiceStatus `json:"status"`
	CurrencyCode     string              `json:"currency"`
	ExchangeRate     *decimal.Decimal    `json:"exchangeRate,omitempty"`
	SubTotal         decimal.Decimal     `json:"subTotal"`
	AdjustmentsTotal decimal.Decimal     `json:"adjustmentsTotal"`
	Total            decimal.Decimal     `json:"total"`
	Adjustments      []Adjustment        `json:"adjustments,omitempty"`
	VendorInvoiceNo  string              `json:"vendorInvoiceNo,omitempty"`
	AcqUnitIDs       []string            `json:"acqUnitIds,omitempty"`
	Note             string              `json:"note,omitempty"`
}

// Adjustment is a sub record contributing to subtotal/total
// computation. Several adjustments may apply to one line or invoice.
type Adjustment struct {
	Type        types.AdjustmentType `json:"type"`
	Value       decimal.Decimal      `json:"value"`
	Description string               `json:"description,omitempty"`
}

// Validate validates the invoice
func (i *Invoice) Validate() error {
	if i.ID != "" {
		if err := types.ValidateUUID(i.ID); err != nil {
			return err
		}
	}
	if err := i.Status.Validate(); err != nil {
		return err
	}
	if i.CurrencyCode == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("Currency is required").
			Mark(ierr.ErrValidation)
	}
	for _, adj := range i.Adjustments {
		if err := adj.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the adjustment
func (a Adjustment) Validate() error {
	return a.Type.Validate()
}

// Equal reports whether two adjustments carry the same type, value and
// description. Value comparison is numeric, not textual.
func (a Adjustment) Equal(other Adjustment) bool {
	return a.Type == other.Type &&
		a.Value.Equal(other.Value) &&
		a.Description == other.Description
}
