package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// CreateReservation inserts one Reservation row and exactly one
// Chambre_Reservation row linking it to roomID, in a single transaction.
// Availability for the target room is re-checked inside the transaction, so
// two writers racing for the same room and overlapping dates cannot both
// commit. On any failure nothing persists; surrogate-key gaps are fine.
func (db *DB) CreateReservation(ctx context.Context, clientID, roomID int64, arrival, departure time.Time) (int64, error) {
	if !arrival.Before(departure) {
		return 0, ErrInvalidDateRange
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM Client WHERE Id_Client = ?`, clientID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check client: %w", err)
	}
	if exists == 0 {
		return 0, ErrClientNotFound
	}

	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM Chambre WHERE Id_Chambre = ?`, roomID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check room: %w", err)
	}
	if exists == 0 {
		return 0, ErrRoomNotFound
	}

	// Same inclusive-boundary overlap test as the availability query.
	var overlapping int
	queryOverlap := `SELECT COUNT(*)
                     FROM Chambre_Reservation cr
                     JOIN Reservation r ON cr.Id_Reservation = r.Id_Reservation
                     WHERE cr.Id_Chambre = ? AND r.Date_arrivee <= ? AND r.Date_depart >= ?`
	err = tx.QueryRowContext(ctx, queryOverlap, roomID,
		departure.Format(models.DateLayout), arrival.Format(models.DateLayout)).Scan(&overlapping)
	if err != nil {
		return 0, fmt.Errorf("failed to check availability in tx: %w", err)
	}
	if overlapping > 0 {
		return 0, ErrRoomNotAvailable
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO Reservation (Date_arrivee, Date_depart, Id_Client) VALUES (?, ?, ?)`,
		arrival.Format(models.DateLayout), departure.Format(models.DateLayout), clientID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrClientNotFound
		}
		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO Chambre_Reservation (Id_Chambre, Id_Reservation) VALUES (?, ?)`,
		roomID, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateLink
		}
		if isForeignKeyViolation(err) {
			return 0, ErrRoomNotFound
		}
		return 0, fmt.Errorf("failed to link room to reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reservation: %w", err)
	}
	return id, nil
}

func (db *DB) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	var res models.Reservation
	query := `SELECT Id_Reservation, Date_arrivee, Date_depart, Id_Client FROM Reservation WHERE Id_Reservation = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.Arrival, &res.Departure, &res.ClientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	res.Arrival = asDay(res.Arrival)
	res.Departure = asDay(res.Departure)
	return &res, nil
}

const reservationDetailQuery = `SELECT r.Id_Reservation, c.Nom_complet, h.Ville,
                                       r.Date_arrivee, r.Date_depart, ch.Numero, tc.Type
                                FROM Reservation r
                                JOIN Client c ON r.Id_Client = c.Id_Client
                                JOIN Chambre_Reservation cr ON r.Id_Reservation = cr.Id_Reservation
                                JOIN Chambre ch ON cr.Id_Chambre = ch.Id_Chambre
                                JOIN Hotel h ON ch.Id_Hotel = h.Id_Hotel
                                JOIN Type_Chambre tc ON ch.Id_Type = tc.Id_Type`

// ListReservations returns the joined listing the dashboard shows.
func (db *DB) ListReservations(ctx context.Context) ([]models.ReservationDetail, error) {
	rows, err := db.QueryContext(ctx, reservationDetailQuery+` ORDER BY r.Id_Reservation`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()
	return scanReservationDetails(rows)
}

// ListReservationsBetween narrows the listing to reservations fully inside
// the given window, matching the dashboard date filter.
func (db *DB) ListReservationsBetween(ctx context.Context, start, end time.Time) ([]models.ReservationDetail, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}
	query := reservationDetailQuery + ` WHERE r.Date_arrivee >= ? AND r.Date_depart <= ? ORDER BY r.Id_Reservation`
	rows, err := db.QueryContext(ctx, query, start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations between dates: %w", err)
	}
	defer rows.Close()
	return scanReservationDetails(rows)
}

func scanReservationDetails(rows *sql.Rows) ([]models.ReservationDetail, error) {
	var details []models.ReservationDetail
	for rows.Next() {
		var d models.ReservationDetail
		err := rows.Scan(&d.ReservationID, &d.ClientName, &d.City, &d.Arrival, &d.Departure, &d.RoomNumber, &d.RoomType)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation detail: %w", err)
		}
		d.Arrival = asDay(d.Arrival)
		d.Departure = asDay(d.Departure)
		details = append(details, d)
	}
	return details, rows.Err()
}

// ReservationStats aggregates the whole Reservation relation.
func (db *DB) ReservationStats(ctx context.Context) (*models.ReservationStats, error) {
	var stats models.ReservationStats
	var mean sql.NullFloat64
	query := `SELECT COUNT(*), AVG(julianday(Date_depart) - julianday(Date_arrivee)) FROM Reservation`
	if err := db.QueryRowContext(ctx, query).Scan(&stats.Count, &mean); err != nil {
		return nil, fmt.Errorf("failed to compute reservation stats: %w", err)
	}
	stats.MeanStayDays = mean.Float64
	return &stats, nil
}

// AddServiceToReservation links a service offering to an existing
// reservation. The pair is the primary key, so attaching twice fails.
func (db *DB) AddServiceToReservation(ctx context.Context, serviceID, reservationID int64) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO Prestation_Reservation (Id_Prestation, Id_Reservation) VALUES (?, ?)`,
		serviceID, reservationID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLink
		}
		if isForeignKeyViolation(err) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to link service to reservation: %w", err)
	}
	return nil
}

// ServicesForReservation lists the offerings attached to a reservation.
func (db *DB) ServicesForReservation(ctx context.Context, reservationID int64) ([]models.Service, error) {
	query := `SELECT p.Id_Prestation, p.Prix, p.Description
              FROM Prestation p
              JOIN Prestation_Reservation pr ON p.Id_Prestation = pr.Id_Prestation
              WHERE pr.Id_Reservation = ?
              ORDER BY p.Id_Prestation`
	rows, err := db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation services: %w", err)
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
