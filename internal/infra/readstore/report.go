package readstore

import (
	"context"

	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/usecase/queries"
)

type ReportReadStore struct {
	db db.DBTX
}

func NewReportReadStore(db db.DBTX) *ReportReadStore {
	return &ReportReadStore{db: db}
}

// Voided invoices are excluded; revenue is recognized at issue time.
const monthlyRevenueSQL = `
SELECT EXTRACT(MONTH FROM issued_at)::int AS month,
       COUNT(*) AS invoice_count,
       COALESCE(SUM(total_cents), 0)::bigint AS total_cents
FROM invoices
WHERE status = 'issued'
  AND EXTRACT(YEAR FROM issued_at)::int = $1
GROUP BY month
ORDER BY month`

func (r *ReportReadStore) MonthlyRevenue(ctx context.Context, year int) ([]*queries.MonthlyRevenueView, error) {
	rows, err := r.db.Query(ctx, monthlyRevenueSQL, year)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute monthly revenue", err)
	}
	defer rows.Close()

	var result []*queries.MonthlyRevenueView
	for rows.Next() {
		view := &queries.MonthlyRevenueView{Year: year}
		if err := rows.Scan(&view.Month, &view.InvoiceCount, &view.TotalCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan monthly revenue row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate monthly revenue rows", err)
	}
	return result, nil
}
