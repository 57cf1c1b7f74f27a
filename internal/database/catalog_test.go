package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHotels(t *testing.T) {
	db := setupSeededDB(t)

	hotels, err := db.ListHotels(context.Background())
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Paris", hotels[0].City)
	assert.Equal(t, "France", hotels[0].Country)
	assert.Equal(t, int64(75001), hotels[0].PostalCode)
	assert.Equal(t, "Lyon", hotels[1].City)
}

func TestListRoomTypes(t *testing.T) {
	db := setupSeededDB(t)

	types, err := db.ListRoomTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Simple", types[0].Label)
	assert.Equal(t, 80.0, types[0].NightlyRate)
	assert.Equal(t, "Double", types[1].Label)
	assert.Equal(t, 120.0, types[1].NightlyRate)
}

func TestListServices(t *testing.T) {
	db := setupSeededDB(t)

	services, err := db.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 5)
	assert.Equal(t, "Petit-déjeuner", services[0].Description)
	assert.Equal(t, 0.0, services[2].Price)
}
