package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "github.com/rogerio-castellano/retail-manager/internal/http"
	handler "github.com/rogerio-castellano/retail-manager/internal/http/handlers"
	"github.com/rogerio-castellano/retail-manager/internal/repo"
)

type checkoutFixture struct {
	clientID int
	productA handler.ProductResponse
	productB handler.ProductResponse
}

func setupCheckoutFixture(t *testing.T, r http.Handler) checkoutFixture {
	t.Helper()
	categoryID := mustCreateCatalog(r)

	clientW := createClient(r, handler.ClientRequest{Name: "Maria"})
	if clientW.Code != http.StatusCreated {
		t.Fatalf("failed to create client: %d", clientW.Code)
	}
	var client handler.ClientResponse
	json.NewDecoder(clientW.Body).Decode(&client)

	productAW := createProduct(r, handler.ProductRequest{
		Name: "Product A", SalePrice: 10, Quantity: 5, CategoryID: categoryID,
	})
	if productAW.Code != http.StatusCreated {
		t.Fatalf("failed to create product A: %d", productAW.Code)
	}
	var productA handler.ProductResponse
	json.NewDecoder(productAW.Body).Decode(&productA)

	productBW := createProduct(r, handler.ProductRequest{
		Name: "Product B", SalePrice: 20, Quantity: 3, CategoryID: categoryID,
	})
	if productBW.Code != http.StatusCreated {
		t.Fatalf("failed to create product B: %d", productBW.Code)
	}
	var productB handler.ProductResponse
	json.NewDecoder(productBW.Body).Decode(&productB)

	return checkoutFixture{clientID: client.Id, productA: productA, productB: productB}
}

func TestCheckoutHandler_RecordsSaleAndDecrementsStock(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	w := checkout(r, handler.CheckoutRequest{
		ClientID: fx.clientID,
		Items: []handler.SaleItemRequest{
			{ProductID: fx.productA.Id, Quantity: 2},
			{ProductID: fx.productB.Id, Quantity: 1},
		},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var sale handler.SaleResponse
	if err := json.NewDecoder(w.Body).Decode(&sale); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if sale.Total != 40 {
		t.Errorf("expected total 40 (2x10 + 1x20), got %v", sale.Total)
	}
	if sale.ClientName != "Maria" {
		t.Errorf("expected client name snapshot 'Maria', got %q", sale.ClientName)
	}
	if len(sale.Items) != 2 {
		t.Fatalf("expected 2 sale items, got %d", len(sale.Items))
	}
	if sale.Items[0].UnitPrice != 10 || sale.Items[1].UnitPrice != 20 {
		t.Errorf("expected unit price snapshots 10 and 20, got %v and %v",
			sale.Items[0].UnitPrice, sale.Items[1].UnitPrice)
	}
	if sale.MonthID == 0 {
		t.Error("expected sale filed under a month bucket")
	}

	productA, _ := productRepo.GetByID(fx.productA.Id)
	if productA.Quantity != 3 {
		t.Errorf("expected product A stock 3 after selling 2 of 5, got %d", productA.Quantity)
	}
	productB, _ := productRepo.GetByID(fx.productB.Id)
	if productB.Quantity != 2 {
		t.Errorf("expected product B stock 2 after selling 1 of 3, got %d", productB.Quantity)
	}
}

func TestCheckoutHandler_StockFloorsAtZero(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	// Oversell: 10 units of a product holding 5.
	w := checkout(r, handler.CheckoutRequest{
		ClientID: fx.clientID,
		Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 10}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	product, _ := productRepo.GetByID(fx.productA.Id)
	if product.Quantity != 0 {
		t.Errorf("expected stock floored at 0, got %d", product.Quantity)
	}
}

func TestCheckoutHandler_BucketsAreReused(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	for i := 0; i < 3; i++ {
		w := checkout(r, handler.CheckoutRequest{
			ClientID: fx.clientID,
			Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 1}},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
	}

	if got := saleRepo.YearCount(); got != 1 {
		t.Errorf("expected a single year bucket for same-month sales, got %d", got)
	}
	if got := saleRepo.MonthCount(); got != 1 {
		t.Errorf("expected a single month bucket for same-month sales, got %d", got)
	}
}

func TestCheckoutHandler_Validation(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	tests := []struct {
		name       string
		payload    handler.CheckoutRequest
		expectCode int
	}{
		{
			name:       "no items",
			payload:    handler.CheckoutRequest{ClientID: fx.clientID},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "zero quantity",
			payload: handler.CheckoutRequest{
				ClientID: fx.clientID,
				Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 0}},
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "missing client",
			payload: handler.CheckoutRequest{
				Items: []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 1}},
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "unknown client",
			payload: handler.CheckoutRequest{
				ClientID: 999999,
				Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 1}},
			},
			expectCode: http.StatusNotFound,
		},
		{
			name: "unknown product",
			payload: handler.CheckoutRequest{
				ClientID: fx.clientID,
				Items:    []handler.SaleItemRequest{{ProductID: 999999, Quantity: 1}},
			},
			expectCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := checkout(r, tt.payload)
			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}

func TestGetMonthlySummaryHandler_EmptyMonthIsZeros(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/sales/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var summary repo.MonthlySummary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	now := time.Now().UTC()
	if summary.Year != now.Year() || summary.Month != int(now.Month()) {
		t.Errorf("expected current year/month, got %d/%d", summary.Year, summary.Month)
	}
	if summary.Total != 0 || summary.SaleCount != 0 {
		t.Errorf("expected zero totals for empty month, got %+v", summary)
	}
}

func TestGetMonthlySummaryHandler_AfterSales(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	for i := 0; i < 2; i++ {
		w := checkout(r, handler.CheckoutRequest{
			ClientID: fx.clientID,
			Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 1}},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/sales/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var summary repo.MonthlySummary
	json.NewDecoder(w.Body).Decode(&summary)
	if summary.SaleCount != 2 {
		t.Errorf("expected 2 sales this month, got %d", summary.SaleCount)
	}
	if summary.Total != 20 {
		t.Errorf("expected total 20, got %v", summary.Total)
	}
}

func TestGetMonthlySummaryHandler_InvalidMonth(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/sales/summary?month=13", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestGetHistoryHandler(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	w := checkout(r, handler.CheckoutRequest{
		ClientID: fx.clientID,
		Items:    []handler.SaleItemRequest{{ProductID: fx.productB.Id, Quantity: 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales/history", nil)
	histW := httptest.NewRecorder()
	r.ServeHTTP(histW, req)

	if histW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", histW.Code)
	}

	var history []repo.YearHistory
	if err := json.NewDecoder(histW.Body).Decode(&history); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 year in history, got %d", len(history))
	}
	if history[0].Year != time.Now().UTC().Year() {
		t.Errorf("expected current year, got %d", history[0].Year)
	}
	if len(history[0].Months) != 1 {
		t.Fatalf("expected 1 month bucket, got %d", len(history[0].Months))
	}
	month := history[0].Months[0]
	if month.Total != 40 || month.SaleCount != 1 {
		t.Errorf("unexpected month aggregate: %+v", month)
	}
}

func TestGetBestSellersHandler(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	// Product A appears in two sales, product B in one.
	for i := 0; i < 2; i++ {
		w := checkout(r, handler.CheckoutRequest{
			ClientID: fx.clientID,
			Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 1}},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
	}
	w := checkout(r, handler.CheckoutRequest{
		ClientID: fx.clientID,
		Items:    []handler.SaleItemRequest{{ProductID: fx.productB.Id, Quantity: 5}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales/best-sellers", nil)
	rankW := httptest.NewRecorder()
	r.ServeHTTP(rankW, req)

	if rankW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", rankW.Code)
	}

	var ranking []repo.BestSeller
	json.NewDecoder(rankW.Body).Decode(&ranking)
	if len(ranking) != 2 {
		t.Fatalf("expected 2 ranked products, got %d", len(ranking))
	}
	// Occurrence count wins over units: A sold twice beats B sold once
	// despite B moving more units.
	if ranking[0].ProductID != fx.productA.Id {
		t.Errorf("expected product A ranked first, got product %d", ranking[0].ProductID)
	}
	if ranking[0].TimesSold != 2 || ranking[1].TimesSold != 1 {
		t.Errorf("unexpected times-sold counts: %d and %d", ranking[0].TimesSold, ranking[1].TimesSold)
	}
	if ranking[1].UnitsSold != 5 {
		t.Errorf("expected product B units sold 5, got %d", ranking[1].UnitsSold)
	}
}

func TestGetBestSellersHandler_OnlySurvivingProducts(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	w := checkout(r, handler.CheckoutRequest{
		ClientID: fx.clientID,
		Items: []handler.SaleItemRequest{
			{ProductID: fx.productA.Id, Quantity: 1},
			{ProductID: fx.productB.Id, Quantity: 1},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	// Remove product B from the catalog; it must drop out of the ranking
	// even though its sale rows remain.
	delW := doAuthorizedJSON(r, http.MethodDelete, fmt.Sprintf("/products/%d", fx.productB.Id), nil)
	if delW.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", delW.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales/best-sellers", nil)
	rankW := httptest.NewRecorder()
	r.ServeHTTP(rankW, req)

	var ranking []repo.BestSeller
	json.NewDecoder(rankW.Body).Decode(&ranking)
	if len(ranking) != 1 {
		t.Fatalf("expected only the surviving product, got %d entries", len(ranking))
	}
	if ranking[0].ProductID != fx.productA.Id {
		t.Errorf("expected product A, got product %d", ranking[0].ProductID)
	}
}

func TestGetSalesByMonthHandler(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	w := checkout(r, handler.CheckoutRequest{
		ClientID: fx.clientID,
		Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var sale handler.SaleResponse
	json.NewDecoder(w.Body).Decode(&sale)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/sales/months/%d", sale.MonthID), nil)
	listW := httptest.NewRecorder()
	r.ServeHTTP(listW, req)

	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", listW.Code)
	}
	var sales []handler.SaleResponse
	json.NewDecoder(listW.Body).Decode(&sales)
	if len(sales) != 1 {
		t.Fatalf("expected 1 sale in the month bucket, got %d", len(sales))
	}
	if len(sales[0].Items) != 1 || sales[0].Items[0].ProductName != "Product A" {
		t.Errorf("expected line items with product name snapshots, got %+v", sales[0].Items)
	}
}

func TestExportSalesHandler(t *testing.T) {
	t.Cleanup(clearCatalogAndSales)
	r := api.NewRouter()
	fx := setupCheckoutFixture(t, r)

	w := checkout(r, handler.CheckoutRequest{
		ClientID: fx.clientID,
		Items:    []handler.SaleItemRequest{{ProductID: fx.productA.Id, Quantity: 1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	t.Run("csv", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales/export?format=csv", nil)
		expW := httptest.NewRecorder()
		r.ServeHTTP(expW, req)

		if expW.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", expW.Code)
		}
		if ct := expW.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected text/csv, got %q", ct)
		}
	})

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales/export?format=json", nil)
		expW := httptest.NewRecorder()
		r.ServeHTTP(expW, req)

		if expW.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", expW.Code)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales/export?format=xml", nil)
		expW := httptest.NewRecorder()
		r.ServeHTTP(expW, req)

		if expW.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", expW.Code)
		}
	})
}
