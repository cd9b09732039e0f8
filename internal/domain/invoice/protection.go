package invoice

import (
	"sort"

	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/types"
	"github.com/samber/lo"
)

// ProtectedField pairs a field name with an explicit change detector.
// The static list replaces runtime field inspection: every protected
// field names its own comparator.
type ProtectedField struct {
	Name    string
	Changed func(proposed, stored *InvoiceLine) bool
}

// LineProtectedFields are the invoice line fields that may not change
// once the parent invoice is past approval.
var LineProtectedFields = []ProtectedField{
	{
		Name: "invoiceId",
		Changed: func(proposed, stored *InvoiceLine) bool {
			return proposed.InvoiceID != stored.InvoiceID
		},
	},
	{
		Name: "invoiceLineNumber",
		Changed: func(proposed, stored *InvoiceLine) bool {
			return proposed.InvoiceLineNumber != stored.InvoiceLineNumber
		},
	},
	{
		Name: "unitPrice",
		Changed: func(proposed, stored *InvoiceLine) bool {
			return !proposed.UnitPrice.Equal(stored.UnitPrice)
		},
	},
	{
		Name: "quantity",
		Changed: func(proposed, stored *InvoiceLine) bool {
			return !proposed.Quantity.Equal(stored.Quantity)
		},
	},
	{
		Name: "adjustments",
		Changed: func(proposed, stored *InvoiceLine) bool {
			return !adjustmentsEqual(proposed.Adjustments, stored.Adjustments)
		},
	},
	{
		Name: "poLineId",
		Changed: func(proposed, stored *InvoiceLine) bool {
			return lo.FromPtr(proposed.POLineID) != lo.FromPtr(stored.POLineID)
		},
	},
}

// IsPostApproval reports whether the invoice's workflow status
// indicates approval has already happened. Below approval no field
// protection applies.
func IsPostApproval(inv *Invoice) bool {
	return inv.Status == types.InvoiceStatusApproved ||
		inv.Status == types.InvoiceStatusPaid ||
		inv.Status == types.InvoiceStatusCancelled
}

// FindChangedProtectedFields compares the proposed line against the
// stored one restricted to the protected field list and returns the
// names of every field that would change. The result is sorted so
// callers and error payloads are order independent.
func FindChangedProtectedFields(proposed, stored *InvoiceLine) []string {
	var changed []string
	for _, field := range LineProtectedFields {
		if field.Changed(proposed, stored) {
			changed = append(changed, field.Name)
		}
	}
	sort.Strings(changed)
	return changed
}

// VerifyProtectedFieldsUnchanged fails with a protected field error
// listing every disallowed change; a no-op when the set is empty.
func VerifyProtectedFieldsUnchanged(changedFields []string) error {
	if len(changedFields) == 0 {
		return nil
	}
	return ierr.NewError("protected fields can't be modified").
		WithHintf("Fields %v can't be modified after the invoice has been approved", changedFields).
		WithReportableDetails(map[string]any{
			"fields": changedFields,
		}).
		Mark(ierr.ErrProtectedField)
}

func adjustmentsEqual(proposed, stored []Adjustment) bool {
	if len(proposed) != len(stored) {
		return false
	}
	for i := range proposed {
		if !proposed[i].Equal(stored[i]) {
			return false
		}
	}
	return true
}
