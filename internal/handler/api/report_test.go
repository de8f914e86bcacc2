//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"rentdesk/internal/handler/api"
	resdto "rentdesk/internal/handler/dto/response"
	"rentdesk/internal/usecase/queries"
	"rentdesk/tests/common/httptest"
	queriesmock "rentdesk/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReportHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockReportQueries
	handler     *api.ReportHandler
}

func (s *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockReportQueries(s.mockCtrl)
	s.handler = api.NewReportHandler(s.mockQueries)

	s.router.GET("/reports/revenue", s.handler.MonthlyRevenue)
}

func (s *ReportHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}

func (s *ReportHandlerTestSuite) TestMonthlyRevenue() {
	s.Run("success: returns the twelve-month breakdown", func() {
		views := []*queries.MonthlyRevenueView{
			{Year: 2026, Month: 1, InvoiceCount: 3, TotalCents: 40500},
			{Year: 2026, Month: 2, InvoiceCount: 1, TotalCents: 9000},
		}
		s.mockQueries.EXPECT().MonthlyRevenue(gomock.Any(), 2026).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/revenue?year=2026", nil, "")

		var response resdto.RevenueReportResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(2026, response.Year)
		s.Len(response.Months, 2)
	})

	s.Run("error: 400 when the year is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/revenue", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid or missing year")
	})

	s.Run("error: 400 when the year is not a number", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/revenue?year=twenty", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid or missing year")
	})

	s.Run("error: 400 when the year is out of range", func() {
		s.mockQueries.EXPECT().MonthlyRevenue(gomock.Any(), 1999).
			Return(nil, queries.ErrInvalidReportYear).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/revenue?year=1999", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid or missing year")
	})
}
