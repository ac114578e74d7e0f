package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/retail-manager/internal/models"
)

type PostgresClientRepository struct {
	db *sql.DB
}

func NewPostgresClientRepository(db *sql.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

func (r *PostgresClientRepository) Create(c models.Client) (models.Client, error) {
	query := `INSERT INTO clients (name, document, phone, email, notes, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Document, c.Phone, c.Email, c.Notes, c.Address, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return c, err
}

func (r *PostgresClientRepository) GetAll() ([]models.Client, error) {
	query := `SELECT id, name, document, phone, email, notes, address FROM clients ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClients(rows)
}

func (r *PostgresClientRepository) GetByID(id int) (models.Client, error) {
	query := `SELECT id, name, document, phone, email, notes, address FROM clients WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c models.Client
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Document, &c.Phone, &c.Email, &c.Notes, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrClientNotFound
	}
	return c, err
}

func (r *PostgresClientRepository) Update(c models.Client) (models.Client, error) {
	query := `UPDATE clients SET name = $1, document = $2, phone = $3, email = $4, notes = $5, address = $6, updated_at = $7
		WHERE id = $8`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Document, c.Phone, c.Email, c.Notes, c.Address, c.UpdatedAt, c.ID)
	if err != nil {
		return models.Client{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (r *PostgresClientRepository) Delete(id int) error {
	query := `DELETE FROM clients WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *PostgresClientRepository) Search(q string) ([]models.Client, error) {
	query := `SELECT id, name, document, phone, email, notes, address FROM clients
		WHERE name ILIKE $1 OR document ILIKE $1 ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClients(rows)
}

func scanClients(rows *sql.Rows) ([]models.Client, error) {
	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Document, &c.Phone, &c.Email, &c.Notes, &c.Address); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
