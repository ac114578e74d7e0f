package handlers

import "time"

type ClientRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
	Address  string `json:"address"`
}

type ClientResponse struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
	Address  string `json:"address"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Threshold   int     `json:"threshold"`
	CostPrice   float64 `json:"cost_price"`
	SalePrice   float64 `json:"sale_price"`
	CategoryID  int     `json:"category_id"`
}

type ProductResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Threshold   int     `json:"threshold"`
	CostPrice   float64 `json:"cost_price"`
	SalePrice   float64 `json:"sale_price"`
	CategoryID  int     `json:"category_id"`
	LowStock    bool    `json:"low_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type SaleItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type CheckoutRequest struct {
	ClientID int               `json:"client_id"`
	Items    []SaleItemRequest `json:"items"`
}

type SaleItemResponse struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type SaleResponse struct {
	Id         int                `json:"id"`
	ClientID   int                `json:"client_id"`
	ClientName string             `json:"client_name"`
	Total      float64            `json:"total"`
	MonthID    int                `json:"month_id"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []SaleItemResponse `json:"items"`
}

type NoteRequest struct {
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	RemindAt *time.Time `json:"remind_at,omitempty"`
}

type NoteResponse struct {
	Id       int        `json:"id"`
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	RemindAt *time.Time `json:"remind_at,omitempty"`
}

type PromoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type PromoResponse struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthStatusResult projects session state to two values: "active" when a
// valid token accompanies the request, "not-found" otherwise.
type AuthStatusResult struct {
	Status string `json:"status"`
}

type ImportProductsResult struct {
	ImportedProductsCount int               `json:"imported"`
	Errors                []ValidationError `json:"errors"`
}
