package storage

import (
	"context"

	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/domain/invoice"
	"github.com/librix/invoicing/internal/httpclient"
	"github.com/librix/invoicing/internal/logger"
)

const invoicesResource = "invoices"

// InvoiceClient implements invoice.Repository over the storage service
type InvoiceClient struct {
	restClient
}

func NewInvoiceClient(client httpclient.Client, cfg *config.Configuration, logger *logger.Logger) *InvoiceClient {
	return &InvoiceClient{
		restClient: newRestClient(client, cfg.Storage.BaseURL, invoicesResource, logger),
	}
}

func (c *InvoiceClient) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := c.getByID(ctx, id, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *InvoiceClient) Update(ctx context.Context, inv *invoice.Invoice) error {
	return c.update(ctx, inv.ID, inv)
}
