package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendForwardsTenantHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	ctx := types.SetTenantID(context.Background(), "diku")
	ctx = types.SetTenantHeaders(ctx, map[string]string{
		types.HeaderToken: "opaque-token",
	})

	client := NewDefaultClient(5 * time.Second)
	resp, err := client.Send(ctx, &Request{
		Method: http.MethodGet,
		URL:    server.URL + "/invoices",
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "diku", got.Get(types.HeaderTenant))
	assert.Equal(t, "opaque-token", got.Get(types.HeaderToken))
	assert.Equal(t, "application/json, text/plain", got.Get("Accept"))
}

func TestSendSetsContentTypeForBodies(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewDefaultClient(5 * time.Second)
	resp, err := client.Send(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    server.URL + "/invoice-lines",
		Body:   []byte(`{"invoiceId":"x"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestSendExplicitHeadersWin(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx := types.SetTenantID(context.Background(), "diku")

	client := NewDefaultClient(5 * time.Second)
	_, err := client.Send(ctx, &Request{
		Method:  http.MethodGet,
		URL:     server.URL,
		Headers: map[string]string{types.HeaderTenant: "other"},
	})

	require.NoError(t, err)
	assert.Equal(t, "other", got.Get(types.HeaderTenant))
}

func TestSendNonSuccessBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("unprocessable"))
	}))
	defer server.Close()

	client := NewDefaultClient(5 * time.Second)
	resp, err := client.Send(context.Background(), &Request{
		Method: http.MethodGet,
		URL:    server.URL,
	})

	require.Nil(t, resp)
	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)
	assert.Equal(t, []byte("unprocessable"), httpErr.Response)
	assert.Equal(t, ierr.ErrCodeHTTPClient, ierr.Code(err))
}

func TestSendRedirectStatusBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a 304 is never followed by the transport, so it reaches this
		// layer as-is and must fail like any other non-2xx
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client := NewDefaultClient(5 * time.Second)
	resp, err := client.Send(context.Background(), &Request{
		Method: http.MethodGet,
		URL:    server.URL,
	})

	require.Nil(t, resp)
	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotModified, httpErr.StatusCode)
}

func TestSendConnectionFailure(t *testing.T) {
	client := NewDefaultClient(time.Second)
	resp, err := client.Send(context.Background(), &Request{
		Method: http.MethodGet,
		URL:    "http://127.0.0.1:1/unreachable",
	})

	require.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, ierr.ErrCodeHTTPClient, ierr.Code(err))
}
