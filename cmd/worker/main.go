package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/events/handlers"
	"github.com/librix/invoicing/internal/httpclient"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/pubsub"
	kafkapubsub "github.com/librix/invoicing/internal/pubsub/kafka"
	"github.com/librix/invoicing/internal/pubsub/memory"
	"github.com/librix/invoicing/internal/pubsub/router"
	"github.com/librix/invoicing/internal/service"
	"github.com/librix/invoicing/internal/storage"
	"github.com/librix/invoicing/internal/types"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	client := httpclient.NewDefaultClient(cfg.Storage.Timeout)
	invoiceRepo := storage.NewInvoiceClient(client, cfg, logg)
	lineRepo := storage.NewInvoiceLineClient(client, cfg, logg)

	invoiceService := service.NewInvoiceService(service.ServiceParams{
		Logger:          logg,
		Config:          cfg,
		InvoiceRepo:     invoiceRepo,
		InvoiceLineRepo: lineRepo,
	})

	ps, err := newPubSub(cfg, logg)
	if err != nil {
		logg.Fatalw("failed to create pubsub", "error", err)
	}
	defer ps.Close()

	r, err := router.NewRouter(cfg, logg)
	if err != nil {
		logg.Fatalw("failed to create router", "error", err)
	}
	defer r.Close()

	handler := handlers.NewInvoiceTotalsHandler(invoiceService, logg)
	handler.Register(r, ps, cfg.Event.Topic)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg.Infow("starting invoice totals worker",
		"topic", cfg.Event.Topic,
		"destination", cfg.Event.Destination,
	)
	if err := r.Run(ctx); err != nil {
		logg.Fatalw("router stopped", "error", err)
	}
}

func newPubSub(cfg *config.Configuration, logg *logger.Logger) (pubsub.PubSub, error) {
	switch cfg.Event.Destination {
	case types.EventDestinationKafka:
		return kafkapubsub.NewPubSub(cfg, logg)
	default:
		return memory.NewPubSub(cfg, logg), nil
	}
}
