package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

// ClientRepository defines the interface for client registry operations.
type ClientRepository interface {
	Create(client models.Client) (models.Client, error)
	GetAll() ([]models.Client, error)
	GetByID(id int) (models.Client, error)
	Update(client models.Client) (models.Client, error)
	Delete(id int) error
	// Search matches a substring against name and document, case-insensitive.
	Search(query string) ([]models.Client, error)
}
