package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/domain/invoice"
	"github.com/librix/invoicing/internal/httpclient"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/types"
)

const sequenceResource = "invoice-line-number"

// SequenceClient implements invoice.SequenceRepository over the
// storage service's line number counter.
type SequenceClient struct {
	restClient
}

func NewSequenceClient(client httpclient.Client, cfg *config.Configuration, logger *logger.Logger) *SequenceClient {
	return &SequenceClient{
		restClient: newRestClient(client, cfg.Storage.BaseURL, sequenceResource, logger),
	}
}

// NextSequenceNumber reads the next line number token for the invoice.
// Every successful read consumes the token.
func (c *SequenceClient) NextSequenceNumber(ctx context.Context, invoiceID string) (string, error) {
	if err := types.ValidateUUID(invoiceID); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("invoiceId", invoiceID)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, c.resource, params.Encode())

	var sequence invoice.SequenceNumber
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &sequence); err != nil {
		return "", err
	}
	return sequence.SequenceNumber, nil
}
