package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/events"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/pubsub"
)

// TotalsPublisher produces invoice totals recalculation events
type TotalsPublisher interface {
	PublishInvoiceTotals(ctx context.Context, event *events.InvoiceTotalsEvent) error
	Close() error
}

type totalsPublisher struct {
	pubSub pubsub.PubSub
	config *config.EventConfig
	logger *logger.Logger
}

// NewTotalsPublisher creates a publisher bound to the configured
// totals topic
func NewTotalsPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) TotalsPublisher {
	return &totalsPublisher{
		pubSub: pubSub,
		config: &cfg.Event,
		logger: logger,
	}
}

func (p *totalsPublisher) PublishInvoiceTotals(ctx context.Context, event *events.InvoiceTotalsEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	messageID := event.ID
	if messageID == "" {
		messageID = watermill.NewUUID()
	}

	msg := message.NewMessage(messageID, payload)
	msg.Metadata.Set("tenant_id", event.TenantID)
	msg.Metadata.Set("invoice_id", event.TargetInvoiceID())

	p.logger.Debugw("publishing invoice totals event",
		"event_id", messageID,
		"invoice_id", event.TargetInvoiceID(),
		"tenant_id", event.TenantID,
		"topic", p.config.Topic,
	)

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish invoice totals event",
			"error", err,
			"event_id", messageID,
			"invoice_id", event.TargetInvoiceID(),
		)
		return err
	}

	return nil
}

// Close closes the publisher
func (p *totalsPublisher) Close() error {
	return p.pubSub.Close()
}
