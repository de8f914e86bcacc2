package response

import (
	"rentdesk/internal/usecase/queries"
)

type MonthlyRevenueResponse struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"`
	InvoiceCount int64 `json:"invoiceCount"`
	TotalCents   int64 `json:"totalCents"`
}

type RevenueReportResponse struct {
	Year   int                       `json:"year"`
	Months []*MonthlyRevenueResponse `json:"months"`
}

func NewRevenueReport(year int, rms []*queries.MonthlyRevenueView) *RevenueReportResponse {
	report := &RevenueReportResponse{
		Year:   year,
		Months: make([]*MonthlyRevenueResponse, len(rms)),
	}
	for i, rm := range rms {
		report.Months[i] = &MonthlyRevenueResponse{
			Year:         rm.Year,
			Month:        rm.Month,
			InvoiceCount: rm.InvoiceCount,
			TotalCents:   rm.TotalCents,
		}
	}
	return report
}
