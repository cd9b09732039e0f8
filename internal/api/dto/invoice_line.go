package dto

import (
	"github.com/librix/invoicing/internal/domain/invoice"
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/types"
	"github.com/librix/invoicing/internal/validator"
	"github.com/shopspring/decimal"
)

// AdjustmentRequest represents one adjustment applied to a line
type AdjustmentRequest struct {
	// type determines how the value contributes: Amount or Percentage
	Type types.AdjustmentType `json:"type" validate:"required"`

	// value is the adjustment amount or percentage
	Value decimal.Decimal `json:"value"`

	// description is an optional label shown with the adjustment
	Description string `json:"description,omitempty"`
}

// CreateInvoiceLineRequest represents the request payload for creating
// a new invoice line
type CreateInvoiceLineRequest struct {
	// invoice_id is the identifier of the parent invoice
	InvoiceID string `json:"invoiceId" validate:"required,uuid"`

	// description is an optional text description of the line
	Description string `json:"description,omitempty"`

	// po_line_id optionally links the line to a purchase order line
	POLineID *string `json:"poLineId,omitempty"`

	// unit_price is the price per unit in the invoice currency
	UnitPrice decimal.Decimal `json:"unitPrice"`

	// quantity is the number of units invoiced
	Quantity decimal.Decimal `json:"quantity"`

	// adjustments are the per line adjustments
	Adjustments []AdjustmentRequest `json:"adjustments,omitempty"`

	// comment is optional free text
	Comment string `json:"comment,omitempty"`
}

func (r *CreateInvoiceLineRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validateLineFields(r.UnitPrice, r.Quantity, r.Adjustments)
}

// ToInvoiceLine converts the request to a domain invoice line. Totals
// are left zero; the orchestrator computes them before persistence.
func (r *CreateInvoiceLineRequest) ToInvoiceLine() *invoice.InvoiceLine {
	return &invoice.InvoiceLine{
		InvoiceID:   r.InvoiceID,
		Description: r.Description,
		POLineID:    r.POLineID,
		UnitPrice:   r.UnitPrice,
		Quantity:    r.Quantity,
		Adjustments: toAdjustments(r.Adjustments),
		Comment:     r.Comment,
	}
}

// UpdateInvoiceLineRequest represents the request payload for updating
// an invoice line. The invoice id and line number cannot be updated;
// values sent for them are ignored in favour of the stored ones.
type UpdateInvoiceLineRequest struct {
	// invoice_id must match the stored parent invoice when provided
	InvoiceID string `json:"invoiceId,omitempty" validate:"omitempty,uuid"`

	// description is an optional text description of the line
	Description string `json:"description,omitempty"`

	// po_line_id optionally links the line to a purchase order line
	POLineID *string `json:"poLineId,omitempty"`

	// unit_price is the price per unit in the invoice currency
	UnitPrice decimal.Decimal `json:"unitPrice"`

	// quantity is the number of units invoiced
	Quantity decimal.Decimal `json:"quantity"`

	// adjustments are the per line adjustments
	Adjustments []AdjustmentRequest `json:"adjustments,omitempty"`

	// comment is optional free text
	Comment string `json:"comment,omitempty"`
}

func (r *UpdateInvoiceLineRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validateLineFields(r.UnitPrice, r.Quantity, r.Adjustments)
}

// ToInvoiceLine applies the request on top of the stored line,
// preserving the immutable identity fields.
func (r *UpdateInvoiceLineRequest) ToInvoiceLine(stored *invoice.InvoiceLine) *invoice.InvoiceLine {
	proposed := *stored
	proposed.Description = r.Description
	proposed.POLineID = r.POLineID
	proposed.UnitPrice = r.UnitPrice
	proposed.Quantity = r.Quantity
	proposed.Adjustments = toAdjustments(r.Adjustments)
	proposed.Comment = r.Comment
	if r.InvoiceID != "" {
		// carried through so protection validation can flag the change
		proposed.InvoiceID = r.InvoiceID
	}
	return &proposed
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	*invoice.InvoiceLine
}

// NewInvoiceLineResponse creates a new invoice line response
func NewInvoiceLineResponse(line *invoice.InvoiceLine) *InvoiceLineResponse {
	return &InvoiceLineResponse{InvoiceLine: line}
}

// ListInvoiceLinesResponse represents a paginated list of invoice lines
type ListInvoiceLinesResponse = types.ListResponse[*InvoiceLineResponse]

func validateLineFields(unitPrice, quantity decimal.Decimal, adjustments []AdjustmentRequest) error {
	if unitPrice.IsNegative() {
		return ierr.NewError("unitPrice must be non-negative").
			WithHint("Unit price is negative").
			WithReportableDetails(map[string]any{
				"unitPrice": unitPrice.String(),
			}).Mark(ierr.ErrValidation)
	}
	if quantity.IsNegative() {
		return ierr.NewError("quantity must be non-negative").
			WithHint("Quantity is negative").
			WithReportableDetails(map[string]any{
				"quantity": quantity.String(),
			}).Mark(ierr.ErrValidation)
	}
	for _, adj := range adjustments {
		if err := adj.Type.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func toAdjustments(requests []AdjustmentRequest) []invoice.Adjustment {
	if len(requests) == 0 {
		return nil
	}
	adjustments := make([]invoice.Adjustment, len(requests))
	for i, r := range requests {
		adjustments[i] = invoice.Adjustment{
			Type:        r.Type,
			Value:       r.Value,
			Description: r.Description,
		}
	}
	return adjustments
}
