package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/retail-manager/internal/http/handlers"
)

// NewRouter wires every route. Reads are public; writes sit behind the JWT
// middleware. Rate limiting is applied by main around the whole router.
func NewRouter() http.Handler {
	r := chi.NewRouter()

	// auth
	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Post("/logout", handlers.LogoutHandler)
	r.Post("/refresh", handlers.RefreshTokenHandler)
	r.Get("/auth/status", handlers.AuthStatusHandler)

	// public reads
	r.Get("/clients", handlers.GetClientsHandler)
	r.Get("/clients/search", handlers.SearchClientsHandler)
	r.Get("/clients/{id}", handlers.GetClientByIDHandler)
	r.Get("/categories", handlers.GetCategoriesHandler)
	r.Get("/categories/{id}", handlers.GetCategoryByIDHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/search", handlers.FilterProductsHandler)
	r.Get("/products/low-stock", handlers.GetLowStockProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/sales/summary", handlers.GetMonthlySummaryHandler)
	r.Get("/sales/history", handlers.GetHistoryHandler)
	r.Get("/sales/best-sellers", handlers.GetBestSellersHandler)
	r.Get("/sales/months/{id}", handlers.GetSalesByMonthHandler)
	r.Get("/sales/export", handlers.ExportSalesHandler)
	r.Get("/notes", handlers.GetNotesHandler)
	r.Get("/notes/{id}", handlers.GetNoteByIDHandler)
	r.Get("/promos", handlers.GetPromosHandler)
	r.Get("/promos/{id}", handlers.GetPromoByIDHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	r.Get("/events/changes", handlers.StreamChangesHandler)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// writes
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/clients", handlers.CreateClientHandler)
		r.Put("/clients/{id}", handlers.UpdateClientHandler)
		r.Delete("/clients/{id}", handlers.DeleteClientHandler)

		r.Post("/categories", handlers.CreateCategoryHandler)
		r.Put("/categories/{id}", handlers.UpdateCategoryHandler)
		r.Delete("/categories/{id}", handlers.DeleteCategoryHandler)

		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/{id}/adjust", handlers.AdjustQuantityHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)

		r.Post("/sales", handlers.CheckoutHandler)

		r.Post("/notes", handlers.CreateNoteHandler)
		r.Put("/notes/{id}", handlers.UpdateNoteHandler)
		r.Delete("/notes/{id}", handlers.DeleteNoteHandler)

		r.Post("/promos", handlers.CreatePromoHandler)
		r.Put("/promos/{id}", handlers.UpdatePromoHandler)
		r.Delete("/promos/{id}", handlers.DeletePromoHandler)

		r.Post("/admin/users", handlers.RegisterAsAdminHandler)
	})

	return r
}
