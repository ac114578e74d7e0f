package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/retail-manager/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

// Record runs the whole checkout inside one transaction: year/month bucket
// upserts, the sale row, its items, and the stock decrements. A failure at
// any step rolls everything back.
func (r *PostgresSaleRepository) Record(sale models.Sale) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var yearID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO years (year) VALUES ($1)
		 ON CONFLICT (year) DO UPDATE SET year = EXCLUDED.year
		 RETURNING id`,
		sale.CreatedAt.Year()).Scan(&yearID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to resolve year bucket: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO months (month, year_id) VALUES ($1, $2)
		 ON CONFLICT (month, year_id) DO UPDATE SET month = EXCLUDED.month
		 RETURNING id`,
		int(sale.CreatedAt.Month()), yearID).Scan(&sale.MonthID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to resolve month bucket: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO sales (client_id, client_name, total, month_id, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		sale.ClientID, sale.ClientName, sale.Total, sale.MonthID, sale.CreatedAt).Scan(&sale.ID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to insert sale: %w", err)
	}

	for i, item := range sale.Items {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			sale.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice).
			Scan(&sale.Items[i].ID)
		if err != nil {
			return models.Sale{}, fmt.Errorf("failed to insert sale item: %w", err)
		}
		sale.Items[i].SaleID = sale.ID

		res, err := tx.ExecContext(ctx,
			`UPDATE products SET quantity = GREATEST(quantity - $1, 0), updated_at = $2 WHERE id = $3`,
			item.Quantity, sale.CreatedAt, item.ProductID)
		if err != nil {
			return models.Sale{}, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.Sale{}, ErrProductNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, fmt.Errorf("failed to commit sale: %w", err)
	}
	return sale, nil
}

func (r *PostgresSaleRepository) MonthlySummary(year int, month time.Month) (MonthlySummary, error) {
	query := `
		SELECT COALESCE(SUM(s.total), 0), COUNT(s.id)
		FROM sales s
		JOIN months m ON s.month_id = m.id
		JOIN years y ON m.year_id = y.id
		WHERE y.year = $1 AND m.month = $2
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	summary := MonthlySummary{Year: year, Month: int(month)}
	err := r.db.QueryRowContext(ctx, query, year, int(month)).
		Scan(&summary.Total, &summary.SaleCount)
	return summary, err
}

func (r *PostgresSaleRepository) History() ([]YearHistory, error) {
	query := `
		SELECT y.year, m.id, m.month, COALESCE(SUM(s.total), 0), COUNT(s.id)
		FROM years y
		JOIN months m ON m.year_id = y.id
		LEFT JOIN sales s ON s.month_id = m.id
		GROUP BY y.year, m.id, m.month
		ORDER BY y.year DESC, m.month DESC
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []YearHistory
	for rows.Next() {
		var year int
		var mh MonthHistory
		if err := rows.Scan(&year, &mh.MonthID, &mh.Month, &mh.Total, &mh.SaleCount); err != nil {
			return nil, err
		}
		if len(history) == 0 || history[len(history)-1].Year != year {
			history = append(history, YearHistory{Year: year})
		}
		last := &history[len(history)-1]
		last.Months = append(last.Months, mh)
	}
	return history, rows.Err()
}

func (r *PostgresSaleRepository) BestSellers(limit int) ([]BestSeller, error) {
	// The inner join against products drops lines whose product was removed
	// from the catalog.
	query := `
		SELECT p.id, p.name, COUNT(si.id), COALESCE(SUM(si.quantity), 0), COUNT(DISTINCT s.client_id)
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		GROUP BY p.id, p.name
		ORDER BY COUNT(si.id) DESC, p.id
		LIMIT $1
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranking []BestSeller
	for rows.Next() {
		var b BestSeller
		if err := rows.Scan(&b.ProductID, &b.ProductName, &b.TimesSold, &b.UnitsSold, &b.ClientCount); err != nil {
			return nil, err
		}
		ranking = append(ranking, b)
	}
	return ranking, rows.Err()
}

func (r *PostgresSaleRepository) ByMonth(monthID int) ([]models.Sale, error) {
	query := `SELECT id, client_id, client_name, total, month_id, created_at
		FROM sales WHERE month_id = $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, monthID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, sales)
}

func (r *PostgresSaleRepository) All(since, until *time.Time) ([]models.Sale, error) {
	query := `SELECT id, client_id, client_name, total, month_id, created_at FROM sales WHERE 1=1`
	args := []any{}
	argIdx := 1
	if since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *since)
		argIdx++
	}
	if until != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *until)
	}
	query += " ORDER BY created_at DESC"

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, sales)
}

func (r *PostgresSaleRepository) attachItems(ctx context.Context, sales []models.Sale) ([]models.Sale, error) {
	for i := range sales {
		rows, err := r.db.QueryContext(ctx,
			`SELECT id, sale_id, product_id, product_name, quantity, unit_price
			 FROM sale_items WHERE sale_id = $1 ORDER BY id`,
			sales[i].ID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var item models.SaleItem
			if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
				&item.Quantity, &item.UnitPrice); err != nil {
				rows.Close()
				return nil, err
			}
			sales[i].Items = append(sales[i].Items, item)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return sales, nil
}

func scanSales(rows *sql.Rows) ([]models.Sale, error) {
	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.ClientID, &s.ClientName, &s.Total, &s.MonthID, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
