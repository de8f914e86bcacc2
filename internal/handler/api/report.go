package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "rentdesk/internal/handler/dto/response"
	"rentdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportQueries queries.ReportQueries
}

func NewReportHandler(reportQueries queries.ReportQueries) *ReportHandler {
	return &ReportHandler{reportQueries: reportQueries}
}

// @Summary Monthly revenue report
// @Description Issued invoice totals grouped by month for the given year
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int true "Report year"
// @Success 200 {object} resdto.RevenueReportResponse
// @Failure 400 {object} map[string]string
// @Router /reports/revenue [get]
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing year",
		})
		return
	}

	views, err := h.reportQueries.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidReportYear) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or missing year",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.NewRevenueReport(year, views))
}
