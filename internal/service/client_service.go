package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type ClientService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewClientService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *ClientService {
	return &ClientService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateClient validates the registration form and stores the client.
func (s *ClientService) CreateClient(ctx context.Context, client *models.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	if err := s.store.CreateClient(ctx, client); err != nil {
		return err
	}

	if s.eventBus != nil {
		err := s.eventBus.PublishJSON(events.EventClientCreated, events.ClientEventPayload{
			ClientID: client.ID,
			FullName: client.FullName,
			City:     client.City,
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to publish event")
		}
	}

	return nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	return s.store.GetClient(ctx, id)
}

func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.store.ListClients(ctx)
}

// ClientCountByCity returns clients per city, busiest city first.
func (s *ClientService) ClientCountByCity(ctx context.Context) ([]models.CityCount, error) {
	return s.store.ClientCountByCity(ctx)
}

// CreateEvaluation stores a client's rating. The date defaults to today.
func (s *ClientService) CreateEvaluation(ctx context.Context, eval *models.Evaluation) error {
	if eval.Rating < models.RatingMin || eval.Rating > models.RatingMax {
		return database.ErrInvalidRating
	}
	if eval.Date.IsZero() {
		eval.Date = time.Now()
	}

	if err := s.store.CreateEvaluation(ctx, eval); err != nil {
		return err
	}

	if s.eventBus != nil {
		err := s.eventBus.PublishJSON(events.EventEvaluationCreated, map[string]int64{
			"evaluation_id": eval.ID,
			"client_id":     eval.ClientID,
			"rating":        eval.Rating,
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to publish event")
		}
	}

	return nil
}

func (s *ClientService) ListEvaluations(ctx context.Context) ([]models.Evaluation, error) {
	return s.store.ListEvaluations(ctx)
}

func validateClient(client *models.Client) error {
	// Та же проверка обязательных полей, что и в форме регистрации
	required := map[string]string{
		"full_name": client.FullName,
		"address":   client.Address,
		"city":      client.City,
		"email":     client.Email,
		"phone":     client.Phone,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", database.ErrMissingField, field)
		}
	}
	if client.PostalCode <= 0 {
		return fmt.Errorf("%w: postal_code", database.ErrMissingField)
	}
	return nil
}
