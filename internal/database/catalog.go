package database

import (
	"context"
	"fmt"

	"hotelier/internal/models"
)

// Catalog reads. Hotels, room types and service offerings are read-mostly
// reference data seeded by Seed and never mutated by the core.

func (db *DB) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	query := `SELECT Id_Hotel, Ville, Pays, Code_postal FROM Hotel ORDER BY Id_Hotel`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.City, &h.Country, &h.PostalCode); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func (db *DB) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	query := `SELECT Id_Type, Type, Tarif FROM Type_Chambre ORDER BY Id_Type`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	defer rows.Close()

	var types []models.RoomType
	for rows.Next() {
		var t models.RoomType
		if err := rows.Scan(&t.ID, &t.Label, &t.NightlyRate); err != nil {
			return nil, fmt.Errorf("failed to scan room type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (db *DB) ListServices(ctx context.Context) ([]models.Service, error) {
	query := `SELECT Id_Prestation, Prix, Description FROM Prestation ORDER BY Id_Prestation`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Price, &s.Description); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}
