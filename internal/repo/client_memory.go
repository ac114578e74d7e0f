package repo

import (
	"strings"

	"github.com/rogerio-castellano/retail-manager/internal/models"
)

// InMemoryClientRepository is an in-memory implementation of ClientRepository.
type InMemoryClientRepository struct {
	clients []models.Client
	nextID  int
}

func NewInMemoryClientRepository() *InMemoryClientRepository {
	return &InMemoryClientRepository{
		clients: []models.Client{},
		nextID:  1,
	}
}

func (r *InMemoryClientRepository) Create(c models.Client) (models.Client, error) {
	c.ID = r.nextID
	r.nextID++
	r.clients = append(r.clients, c)
	return c, nil
}

func (r *InMemoryClientRepository) GetAll() ([]models.Client, error) {
	return r.clients, nil
}

func (r *InMemoryClientRepository) GetByID(id int) (models.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

func (r *InMemoryClientRepository) Update(c models.Client) (models.Client, error) {
	for i, existing := range r.clients {
		if existing.ID == c.ID {
			r.clients[i] = c
			return c, nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

func (r *InMemoryClientRepository) Delete(id int) error {
	for i, c := range r.clients {
		if c.ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return ErrClientNotFound
}

func (r *InMemoryClientRepository) Search(q string) ([]models.Client, error) {
	q = strings.ToLower(q)
	var matched []models.Client
	for _, c := range r.clients {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Document), q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *InMemoryClientRepository) Clear() {
	r.clients = []models.Client{}
}
