package export

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportReservations(t *testing.T) {
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Seed(context.Background()))

	exporter := NewExporter(db, config.ExportConfig{Path: t.TempDir()}, &logger)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	path, err := exporter.ExportReservations(context.Background(), start, end)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Réservations")
	require.NoError(t, err)

	// Title row, header row, and the two June reservations from the seed.
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[1][0])
	assert.Equal(t, "Jean Dupont", rows[2][1])
}

func TestExportReservations_EmptyRange(t *testing.T) {
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Seed(context.Background()))

	exporter := NewExporter(db, config.ExportConfig{Path: t.TempDir()}, &logger)

	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)

	path, err := exporter.ExportReservations(context.Background(), start, end)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Réservations")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
