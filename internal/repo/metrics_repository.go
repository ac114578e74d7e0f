package repo

// TopSeller names the product that appears in the most sale lines.
type TopSeller struct {
	Name      string `json:"name"`
	TimesSold int    `json:"times_sold"`
}

// Metrics is the admin dashboard roll-up.
type Metrics struct {
	TotalProducts     int       `json:"total_products"`
	TotalClients      int       `json:"total_clients"`
	TotalSales        int       `json:"total_sales"`
	LowStockCount     int       `json:"low_stock_count"`
	CurrentMonthTotal float64   `json:"current_month_total"`
	CurrentMonthSales int       `json:"current_month_sales"`
	TopSeller         TopSeller `json:"top_seller"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
