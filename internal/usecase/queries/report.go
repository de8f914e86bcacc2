package queries

import (
	"context"

	"rentdesk/internal/pkg/errs"
)

var ErrInvalidReportYear = errs.New("invalid report year")

type RevenueReadStore interface {
	MonthlyRevenue(ctx context.Context, year int) ([]*MonthlyRevenueView, error)
}

type ReportQueries interface {
	MonthlyRevenue(ctx context.Context, year int) ([]*MonthlyRevenueView, error)
}

type reportQueriesImpl struct {
	readStore RevenueReadStore
}

func NewReportQueries(readStore RevenueReadStore) ReportQueries {
	return &reportQueriesImpl{readStore: readStore}
}

func (q *reportQueriesImpl) MonthlyRevenue(ctx context.Context, year int) ([]*MonthlyRevenueView, error) {
	if year < 2000 || year > 2200 {
		return nil, ErrInvalidReportYear
	}
	return q.readStore.MonthlyRevenue(ctx, year)
}
