package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	api "github.com/rogerio-castellano/retail-manager/internal/http"
	handler "github.com/rogerio-castellano/retail-manager/internal/http/handlers"
	"github.com/rogerio-castellano/retail-manager/internal/models"
	"github.com/rogerio-castellano/retail-manager/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token        string
	clientRepo   *repo.InMemoryClientRepository
	categoryRepo *repo.InMemoryCategoryRepository
	productRepo  *repo.InMemoryProductRepository
	saleRepo     *repo.InMemorySaleRepository
	noteRepo     *repo.InMemoryNoteRepository
	promoRepo    *repo.InMemoryPromoRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	clientRepo = repo.NewInMemoryClientRepository()
	handler.SetClientRepo(clientRepo)

	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	categoryRepo = repo.NewInMemoryCategoryRepository()
	categoryRepo.SetProductRepository(productRepo)
	handler.SetCategoryRepo(categoryRepo)

	saleRepo = repo.NewInMemorySaleRepository(productRepo)
	handler.SetSaleRepo(saleRepo)

	noteRepo = repo.NewInMemoryNoteRepository()
	handler.SetNoteRepo(noteRepo)

	promoRepo = repo.NewInMemoryPromoRepository()
	handler.SetPromoRepo(promoRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(productRepo, clientRepo, saleRepo)
}

func clearAllClients() {
	clientRepo.Clear()
}

func clearAllCategories() {
	categoryRepo.Clear()
}

func clearAllProducts() {
	productRepo.Clear()
}

func clearAllSales() {
	saleRepo.Clear()
}

func clearAllNotes() {
	noteRepo.Clear()
}

func clearAllPromos() {
	promoRepo.Clear()
}

func clearCatalogAndSales() {
	saleRepo.Clear()
	productRepo.Clear()
	categoryRepo.Clear()
	clientRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doAuthorizedJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createClient(r http.Handler, c handler.ClientRequest) *httptest.ResponseRecorder {
	return doAuthorizedJSON(r, http.MethodPost, "/clients", c)
}

func createCategory(r http.Handler, c handler.CategoryRequest) *httptest.ResponseRecorder {
	return doAuthorizedJSON(r, http.MethodPost, "/categories", c)
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doAuthorizedJSON(r, http.MethodPost, "/products", p)
}

func adjustProduct(r http.Handler, productID int, adj handler.QuantityAdjustmentRequest) *httptest.ResponseRecorder {
	return doAuthorizedJSON(r, http.MethodPost, fmt.Sprintf("/products/%d/adjust", productID), adj)
}

func checkout(r http.Handler, req handler.CheckoutRequest) *httptest.ResponseRecorder {
	return doAuthorizedJSON(r, http.MethodPost, "/sales", req)
}

// mustCreateCatalog seeds one category and returns its id. Panics on failure
// so tests fail loudly when the fixture is broken.
func mustCreateCatalog(r http.Handler) int {
	w := createCategory(r, handler.CategoryRequest{Name: "General"})
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("could not create fixture category: status %d", w.Code))
	}
	var created handler.CategoryResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		panic(fmt.Sprintf("could not decode fixture category: %v", err))
	}
	return created.Id
}

func jsonBody(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
