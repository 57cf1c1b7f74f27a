package service

import (
	"context"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService exposes the static hotel inventory: hotels, room
// types, rooms and extra services.
type CatalogService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewCatalogService(store domain.Store, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.store.ListHotels(ctx)
}

func (s *CatalogService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	return s.store.ListRoomTypes(ctx)
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.store.ListRooms(ctx)
}

func (s *CatalogService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.store.GetRoom(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.store.ListServices(ctx)
}
