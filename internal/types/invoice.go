package types

import (
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus is the workflow status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusOpen      InvoiceStatus = "Open"
	InvoiceStatusReviewed  InvoiceStatus = "Reviewed"
	InvoiceStatusApproved  InvoiceStatus = "Approved"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusOpen,
		InvoiceStatusReviewed,
		InvoiceStatusApproved,
		InvoiceStatusPaid,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
				"status":  s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AdjustmentType determines how an adjustment value contributes to a
// line's totals
type AdjustmentType string

const (
	// AdjustmentTypeAmount contributes the value as an absolute amount
	AdjustmentTypeAmount AdjustmentType = "Amount"
	// AdjustmentTypePercentage contributes value percent of the sub total
	AdjustmentTypePercentage AdjustmentType = "Percentage"
)

func (t AdjustmentType) String() string {
	return string(t)
}

func (t AdjustmentType) Validate() error {
	allowed := []AdjustmentType{
		AdjustmentTypeAmount,
		AdjustmentTypePercentage,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid adjustment type").
			WithHint("Please provide a valid adjustment type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
				"type":    t,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
