package storage

import (
	"context"
	"fmt"

	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/domain/invoice"
	"github.com/librix/invoicing/internal/httpclient"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/types"
	"github.com/samber/lo"
)

const invoiceLinesResource = "invoice-lines"

// InvoiceLineClient implements invoice.LineRepository over the storage
// service
type InvoiceLineClient struct {
	restClient
}

func NewInvoiceLineClient(client httpclient.Client, cfg *config.Configuration, logger *logger.Logger) *InvoiceLineClient {
	return &InvoiceLineClient{
		restClient: newRestClient(client, cfg.Storage.BaseURL, invoiceLinesResource, logger),
	}
}

func (c *InvoiceLineClient) List(ctx context.Context, filter *types.QueryFilter) (*invoice.LineCollection, error) {
	var collection invoice.LineCollection
	if err := c.get(ctx, filter, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (c *InvoiceLineClient) GetByID(ctx context.Context, id string) (*invoice.InvoiceLine, error) {
	var line invoice.InvoiceLine
	if err := c.getByID(ctx, id, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (c *InvoiceLineClient) GetByInvoiceID(ctx context.Context, invoiceID string) ([]*invoice.InvoiceLine, error) {
	if err := types.ValidateUUID(invoiceID); err != nil {
		return nil, err
	}
	filter := &types.QueryFilter{
		Query: lo.ToPtr(fmt.Sprintf("invoiceId==%s", invoiceID)),
		// a single invoice's lines always fit one page
		Limit: lo.ToPtr(500),
	}
	collection, err := c.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return collection.InvoiceLines, nil
}

func (c *InvoiceLineClient) Create(ctx context.Context, line *invoice.InvoiceLine) (*invoice.InvoiceLine, error) {
	var created invoice.InvoiceLine
	if err := c.save(ctx, line, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *InvoiceLineClient) Update(ctx context.Context, line *invoice.InvoiceLine) error {
	return c.update(ctx, line.ID, line)
}

func (c *InvoiceLineClient) Delete(ctx context.Context, id string) error {
	return c.delete(ctx, id)
}
