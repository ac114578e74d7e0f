package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

// InMemoryPromoRepository is an in-memory implementation of PromoRepository.
type InMemoryPromoRepository struct {
	promos []models.Promo
	nextID int
}

func NewInMemoryPromoRepository() *InMemoryPromoRepository {
	return &InMemoryPromoRepository{nextID: 1}
}

func (r *InMemoryPromoRepository) Create(p models.Promo) (models.Promo, error) {
	p.ID = r.nextID
	r.nextID++
	r.promos = append(r.promos, p)
	return p, nil
}

func (r *InMemoryPromoRepository) GetAll() ([]models.Promo, error) {
	return r.promos, nil
}

func (r *InMemoryPromoRepository) GetByID(id int) (models.Promo, error) {
	for _, p := range r.promos {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Promo{}, ErrPromoNotFound
}

func (r *InMemoryPromoRepository) Update(p models.Promo) (models.Promo, error) {
	for i, existing := range r.promos {
		if existing.ID == p.ID {
			r.promos[i] = p
			return p, nil
		}
	}
	return models.Promo{}, ErrPromoNotFound
}

func (r *InMemoryPromoRepository) Delete(id int) error {
	for i, p := range r.promos {
		if p.ID == id {
			r.promos = append(r.promos[:i], r.promos[i+1:]...)
			return nil
		}
	}
	return ErrPromoNotFound
}

func (r *InMemoryPromoRepository) Clear() {
	r.promos = nil
}
