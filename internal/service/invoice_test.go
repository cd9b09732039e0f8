package service

import (
	"testing"

	"github.com/librix/invoicing/internal/domain/invoice"
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/testutil"
	"github.com/librix/invoicing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewInvoiceService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		InvoiceRepo:     stores.InvoiceRepo,
		InvoiceLineRepo: stores.InvoiceLineRepo,
		SequenceRepo:    stores.SequenceRepo,
		TotalsPublisher: s.GetTotalsPublisher(),
	})
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	s.GetStores().InvoiceRepo.Add(&invoice.Invoice{
		ID:           openInvoiceID,
		Status:       types.InvoiceStatusOpen,
		CurrencyCode: "USD",
	})

	resp, err := s.service.GetInvoice(s.GetContext(), openInvoiceID)

	s.Require().NoError(err)
	s.Equal(openInvoiceID, resp.ID)
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), missingID)

	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestRecalculateInvoiceTotals() {
	s.GetStores().InvoiceRepo.Add(&invoice.Invoice{
		ID:           openInvoiceID,
		Status:       types.InvoiceStatusOpen,
		CurrencyCode: "USD",
		Adjustments: []invoice.Adjustment{
			{Type: types.AdjustmentTypePercentage, Value: decimal.NewFromInt(10)},
		},
	})
	s.GetStores().InvoiceLineRepo.Add(&invoice.InvoiceLine{
		ID:               lineID,
		InvoiceID:        openInvoiceID,
		SubTotal:         decimal.NewFromInt(100),
		AdjustmentsTotal: decimal.NewFromInt(5),
		Total:            decimal.NewFromInt(105),
	})
	s.GetStores().InvoiceLineRepo.Add(&invoice.InvoiceLine{
		ID:               missingID,
		InvoiceID:        openInvoiceID,
		SubTotal:         decimal.NewFromInt(50),
		AdjustmentsTotal: decimal.Zero,
		Total:            decimal.NewFromInt(50),
	})

	err := s.service.RecalculateInvoiceTotalsByID(s.GetContext(), openInvoiceID)

	s.Require().NoError(err)
	s.Equal(1, s.GetStores().InvoiceRepo.UpdateCalls())

	inv, err := s.GetStores().InvoiceRepo.GetByID(s.GetContext(), openInvoiceID)
	s.Require().NoError(err)
	s.True(inv.SubTotal.Equal(decimal.NewFromInt(150)))
	// 5 from the lines plus 10% of the 150 sub total
	s.True(inv.AdjustmentsTotal.Equal(decimal.NewFromInt(20)))
	s.True(inv.Total.Equal(decimal.NewFromInt(170)))
}

func (s *InvoiceServiceSuite) TestRecalculateInvoiceTotalsNoLines() {
	s.GetStores().InvoiceRepo.Add(&invoice.Invoice{
		ID:           openInvoiceID,
		Status:       types.InvoiceStatusOpen,
		CurrencyCode: "USD",
		SubTotal:     decimal.NewFromInt(99),
		Total:        decimal.NewFromInt(99),
	})

	err := s.service.RecalculateInvoiceTotalsByID(s.GetContext(), openInvoiceID)

	s.Require().NoError(err)

	inv, err := s.GetStores().InvoiceRepo.GetByID(s.GetContext(), openInvoiceID)
	s.Require().NoError(err)
	s.True(inv.SubTotal.IsZero())
	s.True(inv.Total.IsZero())
}

func (s *InvoiceServiceSuite) TestRecalculateUnknownInvoice() {
	err := s.service.RecalculateInvoiceTotalsByID(s.GetContext(), missingID)

	s.True(ierr.IsNotFound(err))
	s.Zero(s.GetStores().InvoiceRepo.UpdateCalls())
}
