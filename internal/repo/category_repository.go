package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

// CategoryRepository defines the interface for catalog category operations.
// Delete follows a restrict policy: removing a category that products still
// reference fails with ErrCategoryInUse.
type CategoryRepository interface {
	Create(category models.Category) (models.Category, error)
	GetAll() ([]models.Category, error)
	GetByID(id int) (models.Category, error)
	Update(category models.Category) (models.Category, error)
	Delete(id int) error
}
