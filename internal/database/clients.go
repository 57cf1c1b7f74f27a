package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotelier/internal/models"
)

// CreateClient inserts a new client and fills in the assigned identifier.
// Email and phone carry no uniqueness constraint, matching the stored schema.
func (db *DB) CreateClient(ctx context.Context, client *models.Client) error {
	query := `INSERT INTO Client (Nom_complet, Adresse, Ville, Code_postal, Email, Telephone)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		client.FullName,
		client.Address,
		client.City,
		client.PostalCode,
		client.Email,
		client.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	client.ID = id
	return nil
}

func (db *DB) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	query := `SELECT Id_Client, Nom_complet, Adresse, Ville, Code_postal, Email, Telephone
              FROM Client WHERE Id_Client = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.FullName, &client.Address, &client.City,
		&client.PostalCode, &client.Email, &client.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (db *DB) ListClients(ctx context.Context) ([]models.Client, error) {
	query := `SELECT Id_Client, Nom_complet, Adresse, Ville, Code_postal, Email, Telephone
              FROM Client ORDER BY Id_Client`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		err := rows.Scan(&c.ID, &c.FullName, &c.Address, &c.City, &c.PostalCode, &c.Email, &c.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// ClientCountByCity tallies clients per city, most populous first.
func (db *DB) ClientCountByCity(ctx context.Context) ([]models.CityCount, error) {
	query := `SELECT Ville, COUNT(*) FROM Client GROUP BY Ville ORDER BY COUNT(*) DESC, Ville`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients by city: %w", err)
	}
	defer rows.Close()

	var counts []models.CityCount
	for rows.Next() {
		var c models.CityCount
		if err := rows.Scan(&c.City, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan city count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
