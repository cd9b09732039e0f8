package types

import (
	"github.com/google/uuid"
	ierr "github.com/librix/invoicing/internal/errors"
)

// GenerateUUID returns a random v4 UUID string. All record identifiers
// exchanged with the storage service are UUID shaped.
func GenerateUUID() string {
	return uuid.NewString()
}

// ValidateUUID rejects identifiers that are not UUID shaped before any
// storage call is made with them.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ierr.WithError(err).
			WithHint("Identifier must be a valid UUID").
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
