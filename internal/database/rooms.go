package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// AvailableRooms returns every room with no linked reservation overlapping
// [start, end). The overlap test is inclusive on both boundaries
// (arrival <= end AND departure >= start): a reservation departing exactly
// on start, or arriving exactly on end, still blocks the room.
func (db *DB) AvailableRooms(ctx context.Context, start, end time.Time) ([]models.AvailableRoom, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	query := `SELECT ch.Id_Chambre, ch.Numero, ch.Etage, ch.Fumeur, tc.Type, tc.Tarif, h.Ville
              FROM Chambre ch
              JOIN Type_Chambre tc ON ch.Id_Type = tc.Id_Type
              JOIN Hotel h ON ch.Id_Hotel = h.Id_Hotel
              WHERE ch.Id_Chambre NOT IN (
                  SELECT cr.Id_Chambre
                  FROM Chambre_Reservation cr
                  JOIN Reservation r ON cr.Id_Reservation = r.Id_Reservation
                  WHERE r.Date_arrivee <= ? AND r.Date_depart >= ?
              )
              ORDER BY ch.Id_Chambre`

	rows, err := db.QueryContext(ctx, query, end.Format(models.DateLayout), start.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}
	defer rows.Close()

	var available []models.AvailableRoom
	for rows.Next() {
		var r models.AvailableRoom
		if err := rows.Scan(&r.RoomID, &r.Number, &r.Floor, &r.Smoking, &r.RoomType, &r.NightlyRate, &r.City); err != nil {
			return nil, fmt.Errorf("failed to scan available room: %w", err)
		}
		available = append(available, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read available rooms: %w", err)
	}
	return available, nil
}

func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	query := `SELECT Id_Chambre, Numero, Etage, Fumeur, Id_Hotel, Id_Type FROM Chambre WHERE Id_Chambre = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.Number, &room.Floor, &room.Smoking, &room.HotelID, &room.RoomTypeID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

func (db *DB) ListRooms(ctx context.Context) ([]models.Room, error) {
	query := `SELECT Id_Chambre, Numero, Etage, Fumeur, Id_Hotel, Id_Type FROM Chambre ORDER BY Id_Chambre`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Floor, &room.Smoking, &room.HotelID, &room.RoomTypeID); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
