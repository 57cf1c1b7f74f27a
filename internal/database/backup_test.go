package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hotelier/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackup(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "hotel.db")
	backupDir := filepath.Join(tempDir, "backups")

	logger := zerolog.Nop()
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	require.NoError(t, db.Seed(context.Background()))
	defer db.Close()

	svc := NewBackupService(dbPath, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	files, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	// The backup is a usable database holding the seeded fixture.
	restored, err := NewDB(filepath.Join(backupDir, files[0].Name()), &logger)
	require.NoError(t, err)
	defer restored.Close()
	assert.Equal(t, 2, countRows(t, restored, "Hotel"))
	assert.Equal(t, 8, countRows(t, restored, "Reservation"))
}

func TestCleanupOldBackups_KeepsRecent(t *testing.T) {
	tempDir := t.TempDir()
	logger := zerolog.Nop()

	svc := NewBackupService("", config.BackupConfig{
		Enabled:       true,
		StoragePath:   tempDir,
		RetentionDays: 7,
	}, &logger)

	fresh := filepath.Join(tempDir, "hotel_recent.db")
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))

	svc.CleanupOldBackups()
	assert.FileExists(t, fresh)
}
