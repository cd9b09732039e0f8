package testutil

import (
	"context"

	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/publisher"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories shared by service tests
type Stores struct {
	InvoiceRepo     *InMemoryInvoiceStore
	InvoiceLineRepo *InMemoryInvoiceLineStore
	SequenceRepo    *InMemorySequenceStore
}

// BaseServiceTestSuite provides common setup for service tests
type BaseServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	cfg             *config.Configuration
	logger          *logger.Logger
	stores          Stores
	pubSub          *InMemoryPubSub
	totalsPublisher publisher.TotalsPublisher
}

// SetupSuite initializes the test environment
func (s *BaseServiceTestSuite) SetupSuite() {
	s.cfg = config.GetDefaultConfig()

	log, err := logger.NewLogger(s.cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.logger = log
}

// SetupTest prepares fresh stores and context for each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = GetContext()
	s.stores = Stores{
		InvoiceRepo:     NewInMemoryInvoiceStore(),
		InvoiceLineRepo: NewInMemoryInvoiceLineStore(),
		SequenceRepo:    NewInMemorySequenceStore(),
	}
	s.pubSub = NewInMemoryPubSub()
	s.totalsPublisher = publisher.NewTotalsPublisher(s.pubSub, s.cfg, s.logger)
}

// TearDownTest cleans up after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
	s.pubSub.ClearMessages()
}

// ClearStores clears all data in the stores
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.InvoiceRepo.Clear()
	s.stores.InvoiceLineRepo.Clear()
	s.stores.SequenceRepo.Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPubSub returns the in-memory pubsub
func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubSub
}

// GetTotalsPublisher returns the publisher bound to the test pubsub
func (s *BaseServiceTestSuite) GetTotalsPublisher() publisher.TotalsPublisher {
	return s.totalsPublisher
}
