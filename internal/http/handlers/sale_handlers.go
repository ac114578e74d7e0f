package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/retail-manager/internal/alerts"
	models "github.com/rogerio-castellano/retail-manager/internal/models"
	repo "github.com/rogerio-castellano/retail-manager/internal/repo"
	"github.com/rogerio-castellano/retail-manager/internal/watch"
)

func saleResponse(s models.Sale) SaleResponse {
	resp := SaleResponse{
		Id:         s.ID,
		ClientID:   s.ClientID,
		ClientName: s.ClientName,
		Total:      s.Total,
		MonthID:    s.MonthID,
		CreatedAt:  s.CreatedAt,
		Items:      make([]SaleItemResponse, len(s.Items)),
	}
	for i, item := range s.Items {
		resp.Items[i] = SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return resp
}

// CheckoutHandler godoc
// @Summary Record a sale
// @Description Snapshots the client name and unit prices, files the sale
// @Description under the current year/month bucket and decrements stock,
// @Description floored at zero. The whole operation is atomic.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body CheckoutRequest true "Cart to check out"
// @Success 201 {object} SaleResponse
// @Failure 400 {object} []ValidationError
// @Failure 404 {string} string "Client or product not found"
// @Failure 500 {string} string "Internal error"
// @Router /sales [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateCheckout(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	client, err := clientRepo.GetByID(req.ClientID)
	if err != nil {
		if errors.Is(err, repo.ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not resolve client", http.StatusInternalServerError)
		return
	}

	sale := models.Sale{
		ClientID:   client.ID,
		ClientName: client.Name,
		CreatedAt:  time.Now().UTC(),
		Items:      make([]models.SaleItem, len(req.Items)),
	}
	for i, item := range req.Items {
		product, err := productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				http.Error(w, fmt.Sprintf("product %d not found", item.ProductID), http.StatusNotFound)
				return
			}
			http.Error(w, "could not resolve product", http.StatusInternalServerError)
			return
		}
		sale.Items[i] = models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.SalePrice,
		}
		sale.Total += product.SalePrice * float64(item.Quantity)
	}

	recorded, err := saleRepo.Record(sale)
	if err != nil {
		log.Printf("could not record sale: %v", err)
		http.Error(w, "could not record sale", http.StatusInternalServerError)
		return
	}
	watch.Publish("sales", "created", recorded.ID)
	watch.Publish("products", "updated", 0)

	for _, item := range recorded.Items {
		product, err := productRepo.GetByID(item.ProductID)
		if err == nil && product.Quantity <= product.Threshold {
			alerts.NotifyLowStock(product)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saleResponse(recorded))
}

// GetMonthlySummaryHandler godoc
// @Summary Revenue summary for one month (defaults to the current one)
// @Tags sales
// @Produce json
// @Param year query int false "Year (defaults to now)"
// @Param month query int false "Month 1-12 (defaults to now)"
// @Success 200 {object} repo.MonthlySummary
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /sales/summary [get]
func GetMonthlySummaryHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if s := r.URL.Query().Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = v
	}
	if s := r.URL.Query().Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		month = time.Month(v)
	}

	summary, err := saleRepo.MonthlySummary(year, month)
	if err != nil {
		http.Error(w, "could not fetch summary", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// GetHistoryHandler godoc
// @Summary Full sales history as year and month buckets with totals
// @Tags sales
// @Produce json
// @Success 200 {array} repo.YearHistory
// @Failure 500 {string} string "Internal error"
// @Router /sales/history [get]
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	history, err := saleRepo.History()
	if err != nil {
		http.Error(w, "could not fetch history", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []repo.YearHistory{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

const defaultBestSellersLimit = 10

// GetBestSellersHandler godoc
// @Summary Products ranked by how often they were sold
// @Tags sales
// @Produce json
// @Param limit query int false "Maximum entries (default 10)"
// @Success 200 {array} repo.BestSeller
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /sales/best-sellers [get]
func GetBestSellersHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultBestSellersLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
			return
		}
		limit = v
	}

	ranking, err := saleRepo.BestSellers(limit)
	if err != nil {
		http.Error(w, "could not fetch best sellers", http.StatusInternalServerError)
		return
	}
	if ranking == nil {
		ranking = []repo.BestSeller{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ranking)
}

// GetSalesByMonthHandler godoc
// @Summary Sales of one month bucket with their line items
// @Tags sales
// @Produce json
// @Param id path int true "Month bucket ID"
// @Success 200 {array} SaleResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 500 {string} string "Internal error"
// @Router /sales/months/{id} [get]
func GetSalesByMonthHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid month ID", http.StatusBadRequest)
		return
	}

	sales, err := saleRepo.ByMonth(id)
	if err != nil {
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}
	response := make([]SaleResponse, len(sales))
	for i, s := range sales {
		response[i] = saleResponse(s)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ExportSalesHandler godoc
// @Summary Export sales
// @Tags sales
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /sales/export [get]
func ExportSalesHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	var since, until *time.Time
	if s := r.URL.Query().Get("since"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return
		}
		since = &ts
	}
	if s := r.URL.Query().Get("until"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return
		}
		until = &ts
	}

	sales, err := saleRepo.All(since, until)
	if err != nil {
		http.Error(w, "could not retrieve sales", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.json"`)
		json.NewEncoder(w).Encode(sales)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "client_id", "client_name", "total", "created_at"})
		for _, s := range sales {
			_ = csvWriter.Write([]string{
				strconv.Itoa(s.ID),
				strconv.Itoa(s.ClientID),
				s.ClientName,
				strconv.FormatFloat(s.Total, 'f', 2, 64),
				s.CreatedAt.Format(time.RFC3339),
			})
		}
		csvWriter.Flush()
	}
}
