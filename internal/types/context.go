package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxTenantID      ContextKey = "ctx_tenant_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxTenantHeaders ContextKey = "ctx_tenant_headers"

	// HeaderTenant is the header carrying the tenant identifier towards
	// the storage service
	HeaderTenant = "X-Tenant"
	// HeaderToken is the header carrying the caller's auth token; the
	// value is passed through opaque, never interpreted here
	HeaderToken = "X-Auth-Token"
	// HeaderRequestID is the header carrying the request correlation id
	HeaderRequestID = "X-Request-Id"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(CtxTenantID).(string); ok {
		return tenantID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetTenantID sets the tenant ID in the context
func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// SetTenantHeaders stores the opaque tenant/auth header map on the
// context. The storage client forwards it verbatim on every call.
func SetTenantHeaders(ctx context.Context, headers map[string]string) context.Context {
	return context.WithValue(ctx, CtxTenantHeaders, headers)
}

// GetTenantHeaders returns the header map to forward to the storage
// service. The tenant id from the context is always included so a
// caller providing only SetTenantID still reaches the right tenant.
func GetTenantHeaders(ctx context.Context) map[string]string {
	headers := make(map[string]string)
	if stored, ok := ctx.Value(CtxTenantHeaders).(map[string]string); ok {
		for k, v := range stored {
			headers[k] = v
		}
	}
	if tenantID := GetTenantID(ctx); tenantID != "" {
		headers[HeaderTenant] = tenantID
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		headers[HeaderRequestID] = requestID
	}
	return headers
}

// DetachedContext returns a fresh background context carrying the
// tenant values of the parent but none of its deadlines or
// cancellation. Background tasks spawned by an operation must outlive
// the operation's own completion.
func DetachedContext(ctx context.Context) context.Context {
	detached := context.Background()
	if tenantID := GetTenantID(ctx); tenantID != "" {
		detached = SetTenantID(detached, tenantID)
	}
	if userID := GetUserID(ctx); userID != "" {
		detached = SetUserID(detached, userID)
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		detached = SetRequestID(detached, requestID)
	}
	if headers, ok := ctx.Value(CtxTenantHeaders).(map[string]string); ok {
		detached = SetTenantHeaders(detached, headers)
	}
	return detached
}

// ValidateTenantContext validates that the required tenant context fields are present
func ValidateTenantContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	tenantID := GetTenantID(ctx)
	if tenantID == "" {
		return fmt.Errorf("no tenant context found in context")
	}

	return nil
}
