package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/retail-manager/internal/models"
)

type PostgresPromoRepository struct {
	db *sql.DB
}

func NewPostgresPromoRepository(db *sql.DB) *PostgresPromoRepository {
	return &PostgresPromoRepository{db: db}
}

func (r *PostgresPromoRepository) Create(p models.Promo) (models.Promo, error) {
	query := `INSERT INTO promos (title, description, price, image_url) VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Title, p.Description, p.Price, p.ImageURL).Scan(&p.ID)
	return p, err
}

func (r *PostgresPromoRepository) GetAll() ([]models.Promo, error) {
	query := `SELECT id, title, description, price, image_url FROM promos ORDER BY id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []models.Promo
	for rows.Next() {
		var p models.Promo
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.ImageURL); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

func (r *PostgresPromoRepository) GetByID(id int) (models.Promo, error) {
	query := `SELECT id, title, description, price, image_url FROM promos WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Promo
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Promo{}, ErrPromoNotFound
	}
	return p, err
}

func (r *PostgresPromoRepository) Update(p models.Promo) (models.Promo, error) {
	query := `UPDATE promos SET title = $1, description = $2, price = $3, image_url = $4 WHERE id = $5`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Price, p.ImageURL, p.ID)
	if err != nil {
		return models.Promo{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Promo{}, ErrPromoNotFound
	}
	return p, nil
}

func (r *PostgresPromoRepository) Delete(id int) error {
	query := `DELETE FROM promos WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrPromoNotFound
	}
	return nil
}
