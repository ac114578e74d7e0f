package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

// ProductFilter narrows Filter results. Nil pointer fields are ignored.
type ProductFilter struct {
	Name       string
	CategoryID *int
	MinPrice   *float64
	MaxPrice   *float64
	Offset     *int
	Limit      *int
}

// ProductRepository defines the interface for catalog product operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(filter ProductFilter) ([]models.Product, int, error)
	// LowStock returns products with quantity at or below their threshold.
	LowStock() ([]models.Product, error)
	// AdjustQuantity applies a manual stock correction. The delta may be
	// positive or negative but must not leave the quantity negative.
	AdjustQuantity(productID int, delta int) (models.Product, error)
}
