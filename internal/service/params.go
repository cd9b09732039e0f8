package service

import (
	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/domain/invoice"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/publisher"
)

// ServiceParams bundles the dependencies shared by the services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	InvoiceRepo     invoice.Repository
	InvoiceLineRepo invoice.LineRepository
	SequenceRepo    invoice.SequenceRepository

	TotalsPublisher publisher.TotalsPublisher
}
