package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableRooms_ExcludesOverlapping(t *testing.T) {
	db := setupSeededDB(t)
	ctx := context.Background()

	// Seeded reservation 1 occupies room 1 over [2025-06-15, 2025-06-18).
	rooms, err := db.AvailableRooms(ctx, mustDate(t, "2025-06-15"), mustDate(t, "2025-06-18"))
	require.NoError(t, err)
	require.Len(t, rooms, 7)

	for _, r := range rooms {
		assert.NotEqual(t, int64(1), r.RoomID)
	}
}

func TestAvailableRooms_InclusiveBoundary(t *testing.T) {
	db := setupSeededDB(t)
	ctx := context.Background()

	// Departure equal to the query start still counts as overlapping.
	rooms, err := db.AvailableRooms(ctx, mustDate(t, "2025-06-18"), mustDate(t, "2025-06-20"))
	require.NoError(t, err)
	require.Len(t, rooms, 7)
	for _, r := range rooms {
		assert.NotEqual(t, int64(1), r.RoomID)
	}

	// Arrival equal to the query end counts as overlapping too.
	rooms, err = db.AvailableRooms(ctx, mustDate(t, "2025-06-12"), mustDate(t, "2025-06-15"))
	require.NoError(t, err)
	for _, r := range rooms {
		assert.NotEqual(t, int64(1), r.RoomID)
	}
}

func TestAvailableRooms_AllFreeOutsideSeason(t *testing.T) {
	db := setupSeededDB(t)

	rooms, err := db.AvailableRooms(context.Background(), mustDate(t, "2027-03-01"), mustDate(t, "2027-03-05"))
	require.NoError(t, err)
	assert.Len(t, rooms, 8)

	// Joined attributes come through for display.
	assert.Equal(t, int64(201), rooms[0].Number)
	assert.Equal(t, "Simple", rooms[0].RoomType)
	assert.Equal(t, 80.0, rooms[0].NightlyRate)
	assert.Equal(t, "Paris", rooms[0].City)
}

func TestAvailableRooms_InvalidRange(t *testing.T) {
	db := setupSeededDB(t)
	ctx := context.Background()

	_, err := db.AvailableRooms(ctx, mustDate(t, "2025-06-18"), mustDate(t, "2025-06-15"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = db.AvailableRooms(ctx, mustDate(t, "2025-06-18"), mustDate(t, "2025-06-18"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGetRoom(t *testing.T) {
	db := setupSeededDB(t)
	ctx := context.Background()

	room, err := db.GetRoom(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(502), room.Number)
	assert.Equal(t, int64(5), room.Floor)
	assert.True(t, room.Smoking)
	assert.Equal(t, int64(1), room.HotelID)
	assert.Equal(t, int64(2), room.RoomTypeID)

	_, err = db.GetRoom(ctx, 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestListRooms(t *testing.T) {
	db := setupSeededDB(t)

	rooms, err := db.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 8)
}
