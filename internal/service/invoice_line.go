package service

import (
	"context"
	"fmt"
	"time"

	"github.com/librix/invoicing/internal/api/dto"
	"github.com/librix/invoicing/internal/domain/invoice"
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/events"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/publisher"
	"github.com/librix/invoicing/internal/types"
)

// InvoiceLineService coordinates fetch, validation, totals
// recalculation, persistence and cascade notification for invoice
// lines. Concurrent updates to the same line are not mutually
// excluded here; the storage tier resolves them last write wins.
type InvoiceLineService interface {
	ListInvoiceLines(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoiceLinesResponse, error)
	GetInvoiceLine(ctx context.Context, id string) (*dto.InvoiceLineResponse, error)
	CreateInvoiceLine(ctx context.Context, req dto.CreateInvoiceLineRequest) (*dto.InvoiceLineResponse, error)
	UpdateInvoiceLine(ctx context.Context, id string, req dto.UpdateInvoiceLineRequest) (*dto.InvoiceLineResponse, error)
	DeleteInvoiceLine(ctx context.Context, id string) error
}

type invoiceLineService struct {
	logger          *logger.Logger
	invoiceRepo     invoice.Repository
	lineRepo        invoice.LineRepository
	sequenceRepo    invoice.SequenceRepository
	totalsPublisher publisher.TotalsPublisher
}

func NewInvoiceLineService(params ServiceParams) InvoiceLineService {
	return &invoiceLineService{
		logger:          params.Logger,
		invoiceRepo:     params.InvoiceRepo,
		lineRepo:        params.InvoiceLineRepo,
		sequenceRepo:    params.SequenceRepo,
		totalsPublisher: params.TotalsPublisher,
	}
}

func (s *invoiceLineService) ListInvoiceLines(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoiceLinesResponse, error) {
	if filter == nil {
		filter = &types.QueryFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	collection, err := s.lineRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceLineResponse, len(collection.InvoiceLines))
	for i, line := range collection.InvoiceLines {
		items[i] = dto.NewInvoiceLineResponse(line)
	}

	response := types.NewListResponse(items, collection.TotalRecords, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

// GetInvoiceLine returns the line with freshly computed totals. When
// the stored totals have drifted, the corrected values are returned
// immediately and the write back plus the invoice notification happen
// in the background; the read never waits for them.
func (s *invoiceLineService) GetInvoiceLine(ctx context.Context, id string) (*dto.InvoiceLineResponse, error) {
	if err := types.ValidateUUID(id); err != nil {
		return nil, err
	}

	line, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, line.InvoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.RecalculateLineTotals(line, inv) {
		s.logger.Infow("invoice line totals out of sync in storage, scheduling correction",
			"invoice_line_id", line.ID,
			"invoice_id", inv.ID,
		)
		s.correctOutOfSyncLine(ctx, line, inv)
	}

	return dto.NewInvoiceLineResponse(line), nil
}

func (s *invoiceLineService) CreateInvoiceLine(ctx context.Context, req dto.CreateInvoiceLineRequest) (*dto.InvoiceLineResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.IsPostApproval(inv) {
		return nil, ierr.NewError("invoice line creation is not allowed").
			WithHintf("Lines cannot be added to invoice %s after approval", inv.ID).
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
				"status":     inv.Status,
			}).
			Mark(ierr.ErrCreationProhibited)
	}

	line := req.ToInvoiceLine()
	line.ID = types.GenerateUUID()
	line.InvoiceID = inv.ID

	// The sequence token is consumed here even if a later step fails;
	// an aborted creation leaves a gap in the numbering.
	sequence, err := s.sequenceRepo.NextSequenceNumber(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	line.InvoiceLineNumber = buildInvoiceLineNumber(inv.FolioInvoiceNo, sequence)

	invoice.CalculateLineTotals(line, inv)

	if err := line.Validate(); err != nil {
		return nil, err
	}

	created, err := s.lineRepo.Create(ctx, line)
	if err != nil {
		return nil, err
	}

	s.notifyInvoiceTotals(ctx, inv)
	return dto.NewInvoiceLineResponse(created), nil
}

func (s *invoiceLineService) UpdateInvoiceLine(ctx context.Context, id string, req dto.UpdateInvoiceLineRequest) (*dto.InvoiceLineResponse, error) {
	if err := types.ValidateUUID(id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, stored.InvoiceID)
	if err != nil {
		return nil, err
	}

	proposed := req.ToInvoiceLine(stored)

	if invoice.IsPostApproval(inv) {
		changed := invoice.FindChangedProtectedFields(proposed, stored)
		if err := invoice.VerifyProtectedFieldsUnchanged(changed); err != nil {
			return nil, err
		}
	}

	// identity fields always come from storage
	proposed.InvoiceID = stored.InvoiceID
	proposed.InvoiceLineNumber = stored.InvoiceLineNumber

	invoice.CalculateLineTotals(proposed, inv)
	totalsChanged := !(proposed.SubTotal.Equal(stored.SubTotal) &&
		proposed.AdjustmentsTotal.Equal(stored.AdjustmentsTotal) &&
		proposed.Total.Equal(stored.Total))

	if err := proposed.Validate(); err != nil {
		return nil, err
	}

	if err := s.lineRepo.Update(ctx, proposed); err != nil {
		return nil, err
	}

	if totalsChanged {
		s.notifyInvoiceTotals(ctx, inv)
	}

	return dto.NewInvoiceLineResponse(proposed), nil
}

func (s *invoiceLineService) DeleteInvoiceLine(ctx context.Context, id string) error {
	if err := types.ValidateUUID(id); err != nil {
		return err
	}

	// the fetch both captures the parent invoice id and turns a delete
	// of an absent line into a not found failure before any delete call
	line, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.lineRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifyInvoiceTotalsByID(ctx, line.InvoiceID)
	return nil
}

// correctOutOfSyncLine persists the recomputed line in the background
// and notifies the invoice only after the write back succeeded.
func (s *invoiceLineService) correctOutOfSyncLine(ctx context.Context, line *invoice.InvoiceLine, inv *invoice.Invoice) {
	corrected := *line
	detached := types.DetachedContext(ctx)
	go func() {
		if err := s.lineRepo.Update(detached, &corrected); err != nil {
			s.logger.Errorw("failed to persist corrected invoice line",
				"invoice_line_id", corrected.ID,
				"error", err,
			)
			return
		}
		s.publish(detached, s.newTotalsEvent(detached, inv, ""))
	}()
}

// notifyInvoiceTotals signals the invoice totals recalculation with a
// full snapshot, fire and forget.
func (s *invoiceLineService) notifyInvoiceTotals(ctx context.Context, inv *invoice.Invoice) {
	detached := types.DetachedContext(ctx)
	event := s.newTotalsEvent(detached, inv, "")
	go s.publish(detached, event)
}

// notifyInvoiceTotalsByID signals the recalculation with a bare
// invoice id when no snapshot is at hand.
func (s *invoiceLineService) notifyInvoiceTotalsByID(ctx context.Context, invoiceID string) {
	detached := types.DetachedContext(ctx)
	event := s.newTotalsEvent(detached, nil, invoiceID)
	go s.publish(detached, event)
}

func (s *invoiceLineService) newTotalsEvent(ctx context.Context, inv *invoice.Invoice, invoiceID string) *events.InvoiceTotalsEvent {
	return &events.InvoiceTotalsEvent{
		ID:         types.GenerateUUID(),
		TenantID:   types.GetTenantID(ctx),
		Invoice:    inv,
		InvoiceID:  invoiceID,
		OccurredAt: time.Now().UTC(),
	}
}

// publish delivers the event at most once; failures are logged, never
// surfaced to the operation that triggered the notification.
func (s *invoiceLineService) publish(ctx context.Context, event *events.InvoiceTotalsEvent) {
	if err := s.totalsPublisher.PublishInvoiceTotals(ctx, event); err != nil {
		s.logger.Errorw("failed to deliver invoice totals event",
			"invoice_id", event.TargetInvoiceID(),
			"error", err,
		)
	}
}

func buildInvoiceLineNumber(folioInvoiceNo, sequence string) string {
	return fmt.Sprintf("%s-%s", folioInvoiceNo, sequence)
}
