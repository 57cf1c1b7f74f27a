package domain

import (
	"context"
	"time"

	"hotelier/internal/models"
)

// Store is the persistence contract the services depend on. The SQLite
// implementation lives in internal/database; tests may substitute mocks.
type Store interface {
	// Availability engine
	AvailableRooms(ctx context.Context, start, end time.Time) ([]models.AvailableRoom, error)

	// Reservation writer and reads
	CreateReservation(ctx context.Context, clientID, roomID int64, arrival, departure time.Time) (int64, error)
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	ListReservations(ctx context.Context) ([]models.ReservationDetail, error)
	ListReservationsBetween(ctx context.Context, start, end time.Time) ([]models.ReservationDetail, error)
	ReservationStats(ctx context.Context) (*models.ReservationStats, error)
	AddServiceToReservation(ctx context.Context, serviceID, reservationID int64) error
	ServicesForReservation(ctx context.Context, reservationID int64) ([]models.Service, error)

	// Clients
	CreateClient(ctx context.Context, client *models.Client) error
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	ClientCountByCity(ctx context.Context) ([]models.CityCount, error)

	// Rooms and catalog
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	ListServices(ctx context.Context) ([]models.Service, error)

	// Evaluations
	CreateEvaluation(ctx context.Context, eval *models.Evaluation) error
	ListEvaluations(ctx context.Context) ([]models.Evaluation, error)
}

// AvailabilityCache caches availability search results keyed by date range.
// Invalidate drops every cached range; it runs after each committed write.
type AvailabilityCache interface {
	Get(ctx context.Context, start, end time.Time) ([]models.AvailableRoom, bool, error)
	Set(ctx context.Context, start, end time.Time, rooms []models.AvailableRoom) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ReservationSyncer schedules mirroring of committed reservations to an
// external sheet. Implementations must not block the caller.
type ReservationSyncer interface {
	EnqueueAppend(ctx context.Context, detail *models.ReservationDetail) error
	EnqueueReplaceAll(ctx context.Context) error
}
