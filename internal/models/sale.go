package models

import "time"

// Year and Month are the time buckets sales hang from. Rows are created on
// demand when a sale is recorded and never edited afterwards.
type Year struct {
	ID   int `json:"id"`
	Year int `json:"year"`
}

type Month struct {
	ID     int `json:"id"`
	Month  int `json:"month"` // 1..12
	YearID int `json:"year_id"`
}

// Sale snapshots the client name at checkout time so the row stays readable
// even if the client is later edited or removed.
type Sale struct {
	ID         int        `json:"id"`
	ClientID   int        `json:"client_id"`
	ClientName string     `json:"client_name"`
	Total      float64    `json:"total"`
	MonthID    int        `json:"month_id"`
	Items      []SaleItem `json:"items,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SaleItem is one checkout line. UnitPrice is a snapshot of the product's
// sale price at the moment of the sale.
type SaleItem struct {
	ID          int     `json:"id"`
	SaleID      int     `json:"sale_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
