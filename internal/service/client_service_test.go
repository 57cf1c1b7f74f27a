package service

import (
	"context"
	"testing"

	"hotelier/internal/database"
	"hotelier/internal/events"
	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validTestClient() *models.Client {
	return &models.Client{
		FullName:   "Jean Dupont",
		Address:    "12 Rue de la Paix",
		City:       "Paris",
		PostalCode: 75002,
		Email:      "jean.dupont@example.com",
		Phone:      "0601020304",
	}
}

func TestClientService_CreateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		bus := events.NewBus()
		svc := NewClientService(store, bus, testLogger())

		var published []string
		bus.Subscribe(events.EventClientCreated, func(e *events.Event) error {
			published = append(published, e.Type)
			return nil
		})

		client := validTestClient()
		store.On("CreateClient", ctx, client).Return(nil).Once()

		require.NoError(t, svc.CreateClient(ctx, client))
		assert.Equal(t, []string{events.EventClientCreated}, published)
		store.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		store := new(mockStore)
		svc := NewClientService(store, nil, testLogger())

		for _, mutate := range []func(*models.Client){
			func(c *models.Client) { c.FullName = "" },
			func(c *models.Client) { c.Address = "  " },
			func(c *models.Client) { c.City = "" },
			func(c *models.Client) { c.PostalCode = 0 },
			func(c *models.Client) { c.Email = "" },
			func(c *models.Client) { c.Phone = "" },
		} {
			client := validTestClient()
			mutate(client)
			assert.ErrorIs(t, svc.CreateClient(ctx, client), database.ErrMissingField)
		}
		store.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
	})
}

func TestClientService_CreateEvaluation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		svc := NewClientService(store, nil, testLogger())

		eval := &models.Evaluation{Rating: 5, Comment: "Séjour parfait", ClientID: 1}
		store.On("CreateEvaluation", ctx, eval).Return(nil).Once()

		require.NoError(t, svc.CreateEvaluation(ctx, eval))
		assert.False(t, eval.Date.IsZero())
		store.AssertExpectations(t)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		store := new(mockStore)
		svc := NewClientService(store, nil, testLogger())

		for _, rating := range []int64{0, 6, -1} {
			eval := &models.Evaluation{Rating: rating, ClientID: 1}
			assert.ErrorIs(t, svc.CreateEvaluation(ctx, eval), database.ErrInvalidRating)
		}
		store.AssertNotCalled(t, "CreateEvaluation", mock.Anything, mock.Anything)
	})
}

func TestClientService_ClientCountByCity(t *testing.T) {
	ctx := context.Background()

	store := new(mockStore)
	svc := NewClientService(store, nil, testLogger())

	counts := []models.CityCount{{City: "Paris", Count: 2}, {City: "Lyon", Count: 1}}
	store.On("ClientCountByCity", ctx).Return(counts, nil).Once()

	got, err := svc.ClientCountByCity(ctx)
	require.NoError(t, err)
	assert.Equal(t, counts, got)
}
