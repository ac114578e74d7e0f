package repo

import (
	"sort"
	"time"

	"github.com/rogerio-castellano/retail-manager/internal/models"
)

// InMemorySaleRepository is an in-memory implementation of SaleRepository.
// It keeps the same year/month bucket semantics as the postgres version:
// buckets are created on first use and reused afterwards.
type InMemorySaleRepository struct {
	years      []models.Year
	months     []models.Month
	sales      []models.Sale
	nextYearID int
	nextMonth  int
	nextSaleID int
	nextItemID int
	products   *InMemoryProductRepository
}

func NewInMemorySaleRepository(products *InMemoryProductRepository) *InMemorySaleRepository {
	return &InMemorySaleRepository{
		nextYearID: 1,
		nextMonth:  1,
		nextSaleID: 1,
		nextItemID: 1,
		products:   products,
	}
}

func (r *InMemorySaleRepository) resolveYear(year int) models.Year {
	for _, y := range r.years {
		if y.Year == year {
			return y
		}
	}
	y := models.Year{ID: r.nextYearID, Year: year}
	r.nextYearID++
	r.years = append(r.years, y)
	return y
}

func (r *InMemorySaleRepository) resolveMonth(month, yearID int) models.Month {
	for _, m := range r.months {
		if m.Month == month && m.YearID == yearID {
			return m
		}
	}
	m := models.Month{ID: r.nextMonth, Month: month, YearID: yearID}
	r.nextMonth++
	r.months = append(r.months, m)
	return m
}

func (r *InMemorySaleRepository) Record(sale models.Sale) (models.Sale, error) {
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	year := r.resolveYear(sale.CreatedAt.Year())
	month := r.resolveMonth(int(sale.CreatedAt.Month()), year.ID)
	sale.MonthID = month.ID

	sale.ID = r.nextSaleID
	r.nextSaleID++
	for i := range sale.Items {
		sale.Items[i].ID = r.nextItemID
		r.nextItemID++
		sale.Items[i].SaleID = sale.ID
		if r.products != nil {
			if _, err := r.products.GetByID(sale.Items[i].ProductID); err != nil {
				return models.Sale{}, err
			}
		}
	}

	// Validation above happened before any mutation, so stock decrements
	// cannot be left half-applied.
	if r.products != nil {
		for _, item := range sale.Items {
			r.products.decrementStock(item.ProductID, item.Quantity)
		}
	}

	r.sales = append(r.sales, sale)
	return sale, nil
}

func (r *InMemorySaleRepository) MonthlySummary(year int, month time.Month) (MonthlySummary, error) {
	summary := MonthlySummary{Year: year, Month: int(month)}
	for _, s := range r.sales {
		if s.CreatedAt.Year() == year && s.CreatedAt.Month() == month {
			summary.Total += s.Total
			summary.SaleCount++
		}
	}
	return summary, nil
}

func (r *InMemorySaleRepository) History() ([]YearHistory, error) {
	var history []YearHistory

	years := make([]models.Year, len(r.years))
	copy(years, r.years)
	sort.Slice(years, func(i, j int) bool { return years[i].Year > years[j].Year })

	for _, y := range years {
		yh := YearHistory{Year: y.Year}

		var months []models.Month
		for _, m := range r.months {
			if m.YearID == y.ID {
				months = append(months, m)
			}
		}
		sort.Slice(months, func(i, j int) bool { return months[i].Month > months[j].Month })

		for _, m := range months {
			mh := MonthHistory{MonthID: m.ID, Month: m.Month}
			for _, s := range r.sales {
				if s.MonthID == m.ID {
					mh.Total += s.Total
					mh.SaleCount++
				}
			}
			yh.Months = append(yh.Months, mh)
		}
		history = append(history, yh)
	}
	return history, nil
}

func (r *InMemorySaleRepository) BestSellers(limit int) ([]BestSeller, error) {
	type acc struct {
		best    BestSeller
		clients map[int]struct{}
	}
	byProduct := map[int]*acc{}

	for _, s := range r.sales {
		for _, item := range s.Items {
			if r.products != nil {
				if _, err := r.products.GetByID(item.ProductID); err != nil {
					continue // product no longer in the catalog
				}
			}
			a, ok := byProduct[item.ProductID]
			if !ok {
				a = &acc{
					best:    BestSeller{ProductID: item.ProductID, ProductName: item.ProductName},
					clients: map[int]struct{}{},
				}
				byProduct[item.ProductID] = a
			}
			a.best.TimesSold++
			a.best.UnitsSold += item.Quantity
			a.clients[s.ClientID] = struct{}{}
		}
	}

	ranking := make([]BestSeller, 0, len(byProduct))
	for _, a := range byProduct {
		a.best.ClientCount = len(a.clients)
		ranking = append(ranking, a.best)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].TimesSold != ranking[j].TimesSold {
			return ranking[i].TimesSold > ranking[j].TimesSold
		}
		return ranking[i].ProductID < ranking[j].ProductID
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

func (r *InMemorySaleRepository) ByMonth(monthID int) ([]models.Sale, error) {
	var sales []models.Sale
	for _, s := range r.sales {
		if s.MonthID == monthID {
			sales = append(sales, s)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.After(sales[j].CreatedAt) })
	return sales, nil
}

func (r *InMemorySaleRepository) All(since, until *time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	for _, s := range r.sales {
		if since != nil && s.CreatedAt.Before(*since) {
			continue
		}
		if until != nil && s.CreatedAt.After(*until) {
			continue
		}
		sales = append(sales, s)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.After(sales[j].CreatedAt) })
	return sales, nil
}

// MonthCount reports how many month buckets exist, for tests asserting
// bucket reuse.
func (r *InMemorySaleRepository) MonthCount() int {
	return len(r.months)
}

// YearCount reports how many year buckets exist.
func (r *InMemorySaleRepository) YearCount() int {
	return len(r.years)
}

func (r *InMemorySaleRepository) Clear() {
	r.years = nil
	r.months = nil
	r.sales = nil
	r.nextYearID = 1
	r.nextMonth = 1
	r.nextSaleID = 1
	r.nextItemID = 1
}
