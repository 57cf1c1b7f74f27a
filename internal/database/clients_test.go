package database

import (
	"context"
	"testing"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClient(t *testing.T) {
	db := setupSeededDB(t)
	ctx := context.Background()

	client := &models.Client{
		FullName:   "Sophie Bernard",
		Address:    "14 Rue des Lilas",
		City:       "Paris",
		PostalCode: 75011,
		Email:      "sophie.bernard@email.fr",
		Phone:      "0667890123",
	}
	require.NoError(t, db.CreateClient(ctx, client))
	assert.Equal(t, int64(6), client.ID)

	got, err := db.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client, got)
}

func TestCreateClient_DuplicateEmailAllowed(t *testing.T) {
	db := setupSeededDB(t)
	ctx := context.Background()

	// The stored schema carries no uniqueness constraint on email or phone.
	dup := &models.Client{FullName: "Jean Dupont", Email: "jean.dupont@email.fr", Phone: "0612345678"}
	require.NoError(t, db.CreateClient(ctx, dup))
	assert.Equal(t, 6, countRows(t, db, "Client"))
}

func TestGetClient_NotFound(t *testing.T) {
	db := setupSeededDB(t)

	_, err := db.GetClient(context.Background(), 42)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestListClients(t *testing.T) {
	db := setupSeededDB(t)

	clients, err := db.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 5)
	assert.Equal(t, "Jean Dupont", clients[0].FullName)
	assert.Equal(t, "Emma Giraud", clients[4].FullName)
}

func TestClientCountByCity(t *testing.T) {
	db := setupSeededDB(t)
	ctx := context.Background()

	// Seeded clients live in five distinct cities; add one more Parisian.
	require.NoError(t, db.CreateClient(ctx, &models.Client{FullName: "Luc Petit", City: "Paris"}))

	counts, err := db.ClientCountByCity(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 5)
	assert.Equal(t, models.CityCount{City: "Paris", Count: 2}, counts[0])
}
