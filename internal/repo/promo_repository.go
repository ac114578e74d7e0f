package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

// PromoRepository defines the interface for promotional flyer operations.
type PromoRepository interface {
	Create(promo models.Promo) (models.Promo, error)
	GetAll() ([]models.Promo, error)
	GetByID(id int) (models.Promo, error)
	Update(promo models.Promo) (models.Promo, error)
	Delete(id int) error
}
