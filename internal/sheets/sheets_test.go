package sheets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRow(t *testing.T) {
	detail := &models.ReservationDetail{
		ReservationID: 7,
		ClientName:    "Jean Dupont",
		City:          "Paris",
		Arrival:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Departure:     time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		RoomNumber:    201,
		RoomType:      "Simple",
	}

	row := ReservationRow(detail)
	require.Len(t, row, len(ReservationHeader()))
	assert.Equal(t, int64(7), row[0])
	assert.Equal(t, "Jean Dupont", row[1])
	assert.Equal(t, "2025-06-15", row[3])
	assert.Equal(t, "2025-06-18", row[4])
}

func TestServiceAccountEmail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client_email":"svc@project.iam.gserviceaccount.com"}`), 0o600))

	email, err := ServiceAccountEmail(path)
	require.NoError(t, err)
	assert.Equal(t, "svc@project.iam.gserviceaccount.com", email)

	_, err = ServiceAccountEmail(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestNewService_MissingCredentials(t *testing.T) {
	_, err := NewService(filepath.Join(t.TempDir(), "absent.json"), "sheet-id")
	assert.Error(t, err)
}
