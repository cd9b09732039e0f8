package handlers

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/librix/invoicing/internal/events"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/pubsub/router"
	"github.com/librix/invoicing/internal/service"
	"github.com/librix/invoicing/internal/types"
)

const handlerName = "invoice_totals_recalculation"

// InvoiceTotalsHandler consumes invoice totals events and refreshes
// the invoice's aggregate totals in storage.
type InvoiceTotalsHandler struct {
	logger         *logger.Logger
	invoiceService service.InvoiceService
}

func NewInvoiceTotalsHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceTotalsHandler {
	return &InvoiceTotalsHandler{
		logger:         logger,
		invoiceService: invoiceService,
	}
}

// Register attaches the handler to the router on the given topic
func (h *InvoiceTotalsHandler) Register(r *router.Router, subscriber message.Subscriber, topic string) {
	r.AddNoPublishHandler(handlerName, topic, subscriber, h.Handle)
}

// Handle processes one totals event. Undecodable payloads are dropped
// after logging; retrying them can never succeed.
func (h *InvoiceTotalsHandler) Handle(msg *message.Message) error {
	var event events.InvoiceTotalsEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("dropping undecodable invoice totals event",
			"message_uuid", msg.UUID,
			"error", err,
		)
		return nil
	}
	if err := event.Validate(); err != nil {
		h.logger.Errorw("dropping invalid invoice totals event",
			"message_uuid", msg.UUID,
			"error", err,
		)
		return nil
	}

	ctx := types.SetTenantID(context.Background(), event.TenantID)

	h.logger.Debugw("processing invoice totals event",
		"invoice_id", event.TargetInvoiceID(),
		"message_uuid", msg.UUID,
	)

	if event.Invoice != nil {
		return h.invoiceService.RecalculateInvoiceTotals(ctx, event.Invoice)
	}
	return h.invoiceService.RecalculateInvoiceTotalsByID(ctx, event.InvoiceID)
}
