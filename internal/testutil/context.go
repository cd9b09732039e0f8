package testutil

import (
	"context"

	"github.com/librix/invoicing/internal/types"
)

const (
	// TestTenantID is the tenant used across unit tests
	TestTenantID = "3a2f8d90-1f6a-4f6e-9c0a-6a1d2b3c4d5e"
	// TestUserID is the acting user used across unit tests
	TestUserID = "7b1c2d3e-4f50-4a6b-8c9d-0e1f2a3b4c5d"
)

// GetContext returns a context carrying the test tenant values
func GetContext() context.Context {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, TestTenantID)
	ctx = types.SetUserID(ctx, TestUserID)
	return ctx
}
