package service

import (
	"context"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// ReservationService owns the availability search and the reservation
// lifecycle. Reads go through the availability cache; every committed
// write invalidates it and enqueues a sheet sync.
type ReservationService struct {
	store    domain.Store
	cache    domain.AvailabilityCache
	eventBus domain.EventPublisher
	syncer   domain.ReservationSyncer
	logger   *zerolog.Logger
}

func NewReservationService(store domain.Store, cache domain.AvailabilityCache, eventBus domain.EventPublisher, syncer domain.ReservationSyncer, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		store:    store,
		cache:    cache,
		eventBus: eventBus,
		syncer:   syncer,
		logger:   logger,
	}
}

// AvailableRooms returns the rooms free for every night in [start, end).
func (s *ReservationService) AvailableRooms(ctx context.Context, start, end time.Time) ([]models.AvailableRoom, error) {
	if !start.Before(end) {
		return nil, database.ErrInvalidDateRange
	}

	metrics.IncAvailabilityQuery()

	if s.cache != nil {
		rooms, ok, err := s.cache.Get(ctx, start, end)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Availability cache read failed")
		} else if ok {
			metrics.IncCache("hit")
			return rooms, nil
		} else {
			metrics.IncCache("miss")
		}
	}

	rooms, err := s.store.AvailableRooms(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, start, end, rooms); err != nil {
			s.logger.Warn().Err(err).Msg("Availability cache write failed")
		}
	}

	return rooms, nil
}

// CreateReservation books the room for the client. Validation and the
// availability re-check happen inside the store's transaction.
func (s *ReservationService) CreateReservation(ctx context.Context, clientID, roomID int64, arrival, departure time.Time) (int64, error) {
	id, err := s.store.CreateReservation(ctx, clientID, roomID, arrival, departure)
	if err != nil {
		return 0, err
	}

	metrics.IncReservationCreated()

	s.publishEvent(events.EventReservationCreated, events.ReservationEventPayload{
		ReservationID: id,
		ClientID:      clientID,
		RoomID:        roomID,
		Arrival:       arrival,
		Departure:     departure,
	})

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Availability cache invalidation failed")
		}
	}

	s.enqueueSync(ctx, id)

	return id, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]models.ReservationDetail, error) {
	return s.store.ListReservations(ctx)
}

func (s *ReservationService) ListReservationsBetween(ctx context.Context, start, end time.Time) ([]models.ReservationDetail, error) {
	if !start.Before(end) {
		return nil, database.ErrInvalidDateRange
	}
	return s.store.ListReservationsBetween(ctx, start, end)
}

func (s *ReservationService) Stats(ctx context.Context) (*models.ReservationStats, error) {
	return s.store.ReservationStats(ctx)
}

// AttachService links an extra service (breakfast, parking, ...) to a
// reservation.
func (s *ReservationService) AttachService(ctx context.Context, serviceID, reservationID int64) error {
	if err := s.store.AddServiceToReservation(ctx, serviceID, reservationID); err != nil {
		return err
	}

	s.publishEvent(events.EventServiceAttached, map[string]int64{
		"service_id":     serviceID,
		"reservation_id": reservationID,
	})

	return nil
}

func (s *ReservationService) ServicesForReservation(ctx context.Context, reservationID int64) ([]models.Service, error) {
	return s.store.ServicesForReservation(ctx, reservationID)
}

func (s *ReservationService) publishEvent(eventType string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("Failed to publish event")
	}
}

func (s *ReservationService) enqueueSync(ctx context.Context, reservationID int64) {
	if s.syncer == nil {
		return
	}

	details, err := s.store.ListReservations(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load reservation for sync")
		return
	}

	for i := range details {
		if details[i].ReservationID == reservationID {
			if err := s.syncer.EnqueueAppend(ctx, &details[i]); err != nil {
				s.logger.Warn().Err(err).Int64("reservation_id", reservationID).Msg("Failed to enqueue sheet sync")
			}
			return
		}
	}
}
