package storage

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/librix/invoicing/internal/config"
	"github.com/librix/invoicing/internal/domain/invoice"
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/httpclient"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/testutil"
	"github.com/librix/invoicing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testInvoiceID = "0a1b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d"
	testLineID    = "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"
)

type StorageClientTestSuite struct {
	suite.Suite
	httpClient *testutil.MockHTTPClient
	cfg        *config.Configuration
	logger     *logger.Logger
	invoices   *InvoiceClient
	lines      *InvoiceLineClient
	sequences  *SequenceClient
}

func TestStorageClientSuite(t *testing.T) {
	suite.Run(t, new(StorageClientTestSuite))
}

func (s *StorageClientTestSuite) SetupSuite() {
	s.cfg = config.GetDefaultConfig()

	log, err := logger.NewLogger(s.cfg)
	s.Require().NoError(err)
	s.logger = log
}

func (s *StorageClientTestSuite) SetupTest() {
	s.httpClient = testutil.NewMockHTTPClient()
	s.invoices = NewInvoiceClient(s.httpClient, s.cfg, s.logger)
	s.lines = NewInvoiceLineClient(s.httpClient, s.cfg, s.logger)
	s.sequences = NewSequenceClient(s.httpClient, s.cfg, s.logger)
}

func (s *StorageClientTestSuite) TestGetInvoiceByID() {
	body, err := json.Marshal(&invoice.Invoice{
		ID:           testInvoiceID,
		Status:       types.InvoiceStatusOpen,
		CurrencyCode: "USD",
	})
	s.Require().NoError(err)

	s.httpClient.RegisterResponse("GET /invoices/"+testInvoiceID, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
	})

	inv, err := s.invoices.GetByID(testutil.GetContext(), testInvoiceID)

	s.NoError(err)
	s.Equal(testInvoiceID, inv.ID)
	s.Equal(types.InvoiceStatusOpen, inv.Status)
	s.Equal("USD", inv.CurrencyCode)
}

func (s *StorageClientTestSuite) TestGetInvoiceByIDNotFound() {
	s.httpClient.RegisterResponse("GET /invoices/"+testInvoiceID, testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       []byte("invoice not found"),
	})

	inv, err := s.invoices.GetByID(testutil.GetContext(), testInvoiceID)

	s.Nil(inv)
	s.True(ierr.IsNotFound(err))
}

func (s *StorageClientTestSuite) TestGetInvoiceByIDRejectsMalformedID() {
	inv, err := s.invoices.GetByID(testutil.GetContext(), "not-a-uuid")

	s.Nil(inv)
	s.True(ierr.IsValidation(err))
	s.Empty(s.httpClient.Requests())
}

func (s *StorageClientTestSuite) TestUpstreamErrorKeepsStatusAndBody() {
	s.httpClient.RegisterResponse("GET /invoices/"+testInvoiceID, testutil.MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       []byte("storage exploded"),
	})

	_, err := s.invoices.GetByID(testutil.GetContext(), testInvoiceID)

	s.Require().Error(err)
	httpErr, ok := httpclient.IsHTTPError(err)
	s.Require().True(ok)
	s.Equal(http.StatusInternalServerError, httpErr.StatusCode)
	s.Equal([]byte("storage exploded"), httpErr.Response)
}

func (s *StorageClientTestSuite) TestListInvoiceLinesBuildsCollectionURL() {
	collection, err := json.Marshal(&invoice.LineCollection{
		InvoiceLines: []*invoice.InvoiceLine{{ID: testLineID, InvoiceID: testInvoiceID}},
		TotalRecords: 1,
	})
	s.Require().NoError(err)

	s.httpClient.RegisterResponse("GET /invoice-lines?limit=10&offset=5&query=invoiceId%3D%3D"+testInvoiceID, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       collection,
	})

	got, err := s.lines.List(testutil.GetContext(), &types.QueryFilter{
		Limit:  lo.ToPtr(10),
		Offset: lo.ToPtr(5),
		Query:  lo.ToPtr("invoiceId==" + testInvoiceID),
	})

	s.NoError(err)
	s.Equal(1, got.TotalRecords)
	s.Require().Len(got.InvoiceLines, 1)
	s.Equal(testLineID, got.InvoiceLines[0].ID)
}

func (s *StorageClientTestSuite) TestGetLinesByInvoiceID() {
	collection, err := json.Marshal(&invoice.LineCollection{
		InvoiceLines: []*invoice.InvoiceLine{
			{ID: testLineID, InvoiceID: testInvoiceID},
		},
		TotalRecords: 1,
	})
	s.Require().NoError(err)

	s.httpClient.RegisterResponse("GET /invoice-lines?limit=500&offset=0&query=invoiceId%3D%3D"+testInvoiceID, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       collection,
	})

	lines, err := s.lines.GetByInvoiceID(testutil.GetContext(), testInvoiceID)

	s.NoError(err)
	s.Require().Len(lines, 1)
	s.Equal(testInvoiceID, lines[0].InvoiceID)
}

func (s *StorageClientTestSuite) TestCreateInvoiceLineReturnsStoredRepresentation() {
	stored, err := json.Marshal(&invoice.InvoiceLine{
		ID:                testLineID,
		InvoiceID:         testInvoiceID,
		InvoiceLineNumber: "10001-1",
		UnitPrice:         decimal.NewFromInt(5),
		Quantity:          decimal.NewFromInt(4),
	})
	s.Require().NoError(err)

	s.httpClient.RegisterResponse("POST /invoice-lines", testutil.MockResponse{
		StatusCode: http.StatusCreated,
		Body:       stored,
	})

	created, err := s.lines.Create(testutil.GetContext(), &invoice.InvoiceLine{
		InvoiceID: testInvoiceID,
		UnitPrice: decimal.NewFromInt(5),
		Quantity:  decimal.NewFromInt(4),
	})

	s.NoError(err)
	s.Equal(testLineID, created.ID)
	s.Equal("10001-1", created.InvoiceLineNumber)
}

func (s *StorageClientTestSuite) TestUpdateInvoiceLineSendsPut() {
	s.httpClient.RegisterResponse("PUT /invoice-lines/"+testLineID, testutil.MockResponse{
		StatusCode: http.StatusNoContent,
	})

	err := s.lines.Update(testutil.GetContext(), &invoice.InvoiceLine{
		ID:        testLineID,
		InvoiceID: testInvoiceID,
	})

	s.NoError(err)

	requests := s.httpClient.Requests()
	s.Require().Len(requests, 1)
	s.Equal(http.MethodPut, requests[0].Method)

	var sent invoice.InvoiceLine
	s.Require().NoError(json.Unmarshal(requests[0].Body, &sent))
	s.Equal(testLineID, sent.ID)
}

func (s *StorageClientTestSuite) TestDeleteInvoiceLine() {
	s.httpClient.RegisterResponse("DELETE /invoice-lines/"+testLineID, testutil.MockResponse{
		StatusCode: http.StatusNoContent,
	})

	s.NoError(s.lines.Delete(testutil.GetContext(), testLineID))
}

func (s *StorageClientTestSuite) TestDeleteInvoiceLineNotFound() {
	s.httpClient.RegisterResponse("DELETE /invoice-lines/"+testLineID, testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       []byte("invoice line not found"),
	})

	err := s.lines.Delete(testutil.GetContext(), testLineID)

	s.True(ierr.IsNotFound(err))
}

func (s *StorageClientTestSuite) TestNextSequenceNumber() {
	body, err := json.Marshal(&invoice.SequenceNumber{SequenceNumber: "3"})
	s.Require().NoError(err)

	s.httpClient.RegisterResponse("GET /invoice-line-number?invoiceId="+testInvoiceID, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
	})

	sequence, err := s.sequences.NextSequenceNumber(testutil.GetContext(), testInvoiceID)

	s.NoError(err)
	s.Equal("3", sequence)
}

func TestRestClientMapsDecodeFailure(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	httpClient := testutil.NewMockHTTPClient()
	httpClient.RegisterResponse("GET /invoices/"+testInvoiceID, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte("this is not json"),
	})

	client := NewInvoiceClient(httpClient, cfg, log)
	_, err = client.GetByID(testutil.GetContext(), testInvoiceID)

	require.Error(t, err)
	assert.Equal(t, ierr.ErrCodeHTTPClient, ierr.Code(err))
}
