package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

// NoteRepository defines the interface for note reminder operations.
type NoteRepository interface {
	Create(note models.Note) (models.Note, error)
	GetAll() ([]models.Note, error)
	GetByID(id int) (models.Note, error)
	Update(note models.Note) (models.Note, error)
	Delete(id int) error
}
