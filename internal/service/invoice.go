package service

import (
	"context"

	"github.com/librix/invoicing/internal/api/dto"
	"github.com/librix/invoicing/internal/domain/invoice"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/types"
)

// InvoiceService exposes the invoice level operations this module
// needs: reads and the aggregate totals recalculation consumed by the
// totals event listener.
type InvoiceService interface {
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	RecalculateInvoiceTotals(ctx context.Context, inv *invoice.Invoice) error
	RecalculateInvoiceTotalsByID(ctx context.Context, id string) error
}

type invoiceService struct {
	logger      *logger.Logger
	invoiceRepo invoice.Repository
	lineRepo    invoice.LineRepository
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		logger:      params.Logger,
		invoiceRepo: params.InvoiceRepo,
		lineRepo:    params.InvoiceLineRepo,
	}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if err := types.ValidateUUID(id); err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

// RecalculateInvoiceTotals refreshes the invoice's aggregate totals
// from its lines and persists the result.
func (s *invoiceService) RecalculateInvoiceTotals(ctx context.Context, inv *invoice.Invoice) error {
	lines, err := s.lineRepo.GetByInvoiceID(ctx, inv.ID)
	if err != nil {
		return err
	}

	invoice.CalculateInvoiceTotals(inv, lines)

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logger.Infow("recalculated invoice totals",
		"invoice_id", inv.ID,
		"sub_total", inv.SubTotal,
		"adjustments_total", inv.AdjustmentsTotal,
		"total", inv.Total,
	)
	return nil
}

func (s *invoiceService) RecalculateInvoiceTotalsByID(ctx context.Context, id string) error {
	if err := types.ValidateUUID(id); err != nil {
		return err
	}
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.RecalculateInvoiceTotals(ctx, inv)
}
