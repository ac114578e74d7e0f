package repo

import (
	"time"

	"github.com/rogerio-castellano/retail-manager/internal/models"
)

// MonthlySummary is the revenue roll-up for one calendar month. Zero values
// mean "no sales yet", never an error.
type MonthlySummary struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Total     float64 `json:"total"`
	SaleCount int     `json:"sale_count"`
}

// MonthHistory is one month bucket inside the full history tree.
type MonthHistory struct {
	MonthID   int     `json:"month_id"`
	Month     int     `json:"month"`
	Total     float64 `json:"total"`
	SaleCount int     `json:"sale_count"`
}

// YearHistory groups the month buckets of one year.
type YearHistory struct {
	Year   int            `json:"year"`
	Months []MonthHistory `json:"months"`
}

// BestSeller ranks one product by how often it appears in sale lines.
// Only products still present in the catalog are ranked.
type BestSeller struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	TimesSold   int    `json:"times_sold"`
	UnitsSold   int    `json:"units_sold"`
	ClientCount int    `json:"client_count"`
}

// SaleRepository records checkouts and serves the sales aggregations.
type SaleRepository interface {
	// Record persists a sale atomically: the year and month buckets are
	// resolved or created, the sale and its items inserted, and every
	// referenced product's stock decremented, floored at zero. Either all
	// of it happens or none of it.
	Record(sale models.Sale) (models.Sale, error)
	// MonthlySummary returns total revenue and sale count for one month.
	MonthlySummary(year int, month time.Month) (MonthlySummary, error)
	// History returns every year bucket with its per-month totals, most
	// recent first.
	History() ([]YearHistory, error)
	// BestSellers ranks products by occurrence count across all sale
	// lines, descending, ties broken by ascending product id.
	BestSellers(limit int) ([]BestSeller, error)
	// ByMonth returns the sales of one month bucket with their items.
	ByMonth(monthID int) ([]models.Sale, error)
	// All returns sales in a time window (both bounds optional), newest
	// first, items included.
	All(since, until *time.Time) ([]models.Sale, error)
}
