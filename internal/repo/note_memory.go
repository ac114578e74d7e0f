package repo

import "github.com/rogerio-castellano/retail-manager/internal/models"

// InMemoryNoteRepository is an in-memory implementation of NoteRepository.
type InMemoryNoteRepository struct {
	notes  []models.Note
	nextID int
}

func NewInMemoryNoteRepository() *InMemoryNoteRepository {
	return &InMemoryNoteRepository{nextID: 1}
}

func (r *InMemoryNoteRepository) Create(n models.Note) (models.Note, error) {
	n.ID = r.nextID
	r.nextID++
	r.notes = append(r.notes, n)
	return n, nil
}

func (r *InMemoryNoteRepository) GetAll() ([]models.Note, error) {
	return r.notes, nil
}

func (r *InMemoryNoteRepository) GetByID(id int) (models.Note, error) {
	for _, n := range r.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Note{}, ErrNoteNotFound
}

func (r *InMemoryNoteRepository) Update(n models.Note) (models.Note, error) {
	for i, existing := range r.notes {
		if existing.ID == n.ID {
			r.notes[i] = n
			return n, nil
		}
	}
	return models.Note{}, ErrNoteNotFound
}

func (r *InMemoryNoteRepository) Delete(id int) error {
	for i, n := range r.notes {
		if n.ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return ErrNoteNotFound
}

func (r *InMemoryNoteRepository) Clear() {
	r.notes = nil
}
