package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&m.TotalClients)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`).Scan(&m.TotalSales)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE quantity <= threshold`).Scan(&m.LowStockCount)

	now := time.Now().UTC()
	_ = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(s.total), 0), COUNT(s.id)
		FROM sales s
		JOIN months mo ON s.month_id = mo.id
		JOIN years y ON mo.year_id = y.id
		WHERE y.year = $1 AND mo.month = $2
	`, now.Year(), int(now.Month())).Scan(&m.CurrentMonthTotal, &m.CurrentMonthSales)

	_ = r.db.QueryRowContext(ctx, `
		SELECT p.name, COUNT(*) as cnt
		FROM sale_items si
		JOIN products p ON si.product_id = p.id
		GROUP BY p.name
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.TopSeller.Name, &m.TopSeller.TimesSold)

	return m, nil
}
