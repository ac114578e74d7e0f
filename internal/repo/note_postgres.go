package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/retail-manager/internal/models"
)

type PostgresNoteRepository struct {
	db *sql.DB
}

func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

func (r *PostgresNoteRepository) Create(n models.Note) (models.Note, error) {
	query := `INSERT INTO notes (title, body, remind_at) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, n.Title, n.Body, n.RemindAt).Scan(&n.ID)
	return n, err
}

func (r *PostgresNoteRepository) GetAll() ([]models.Note, error) {
	query := `SELECT id, title, body, remind_at FROM notes ORDER BY remind_at NULLS LAST, id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.RemindAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *PostgresNoteRepository) GetByID(id int) (models.Note, error) {
	query := `SELECT id, title, body, remind_at FROM notes WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var n models.Note
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.Title, &n.Body, &n.RemindAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	return n, err
}

func (r *PostgresNoteRepository) Update(n models.Note) (models.Note, error) {
	query := `UPDATE notes SET title = $1, body = $2, remind_at = $3, updated_at = now() WHERE id = $4`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, n.Title, n.Body, n.RemindAt, n.ID)
	if err != nil {
		return models.Note{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Note{}, ErrNoteNotFound
	}
	return n, nil
}

func (r *PostgresNoteRepository) Delete(id int) error {
	query := `DELETE FROM notes WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
