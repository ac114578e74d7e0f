package repo

import "time"

// InMemoryMetricsRepository derives dashboard metrics from the other
// in-memory repositories.
type InMemoryMetricsRepository struct {
	products *InMemoryProductRepository
	clients  *InMemoryClientRepository
	sales    *InMemorySaleRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (r *InMemoryMetricsRepository) SetRepositories(products *InMemoryProductRepository,
	clients *InMemoryClientRepository, sales *InMemorySaleRepository) {
	r.products = products
	r.clients = clients
	r.sales = sales
}

func (r *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	var m Metrics

	if r.products != nil {
		m.TotalProducts = len(r.products.products)
		low, _ := r.products.LowStock()
		m.LowStockCount = len(low)
	}
	if r.clients != nil {
		m.TotalClients = len(r.clients.clients)
	}
	if r.sales != nil {
		m.TotalSales = len(r.sales.sales)

		now := time.Now().UTC()
		summary, _ := r.sales.MonthlySummary(now.Year(), now.Month())
		m.CurrentMonthTotal = summary.Total
		m.CurrentMonthSales = summary.SaleCount

		if ranking, _ := r.sales.BestSellers(1); len(ranking) > 0 {
			m.TopSeller = TopSeller{Name: ranking[0].ProductName, TimesSold: ranking[0].TimesSold}
		}
	}
	return m, nil
}
