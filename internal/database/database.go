package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DB wraps the SQLite handle. Table and column names follow the original
// hotel.db schema and are treated as a compatibility surface: an existing
// data file opens unchanged.
type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if !strings.HasPrefix(path, ":memory:") {
		// Создаем директорию для БД, если её нет
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: keeps :memory: databases stable and matches the
	// open-execute-release access model of the callers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return &DB{DB: db, logger: logger}, nil
}

// dsn enables referential-integrity enforcement on every connection.
func dsn(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on", path)
}

// asDay normalizes a DATE column value from the driver to midnight UTC.
// Columns declared DATE come back from go-sqlite3 as time.Time already;
// only the calendar date is meaningful.
func asDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS Hotel (
            Id_Hotel INTEGER PRIMARY KEY AUTOINCREMENT,
            Ville TEXT,
            Pays TEXT,
            Code_postal INTEGER
        )`,
		`CREATE TABLE IF NOT EXISTS Type_Chambre (
            Id_Type INTEGER PRIMARY KEY AUTOINCREMENT,
            Type TEXT,
            Tarif REAL
        )`,
		`CREATE TABLE IF NOT EXISTS Chambre (
            Id_Chambre INTEGER PRIMARY KEY AUTOINCREMENT,
            Numero INTEGER,
            Etage INTEGER,
            Fumeur INTEGER,
            Id_Hotel INTEGER,
            Id_Type INTEGER,
            FOREIGN KEY (Id_Hotel) REFERENCES Hotel(Id_Hotel),
            FOREIGN KEY (Id_Type) REFERENCES Type_Chambre(Id_Type)
        )`,
		`CREATE TABLE IF NOT EXISTS Client (
            Id_Client INTEGER PRIMARY KEY AUTOINCREMENT,
            Adresse TEXT,
            Ville TEXT,
            Code_postal INTEGER,
            Email TEXT,
            Telephone TEXT,
            Nom_complet TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS Prestation (
            Id_Prestation INTEGER PRIMARY KEY AUTOINCREMENT,
            Prix REAL,
            Description TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS Reservation (
            Id_Reservation INTEGER PRIMARY KEY AUTOINCREMENT,
            Date_arrivee DATE,
            Date_depart DATE,
            Id_Client INTEGER,
            FOREIGN KEY (Id_Client) REFERENCES Client(Id_Client)
        )`,
		`CREATE TABLE IF NOT EXISTS Evaluation (
            Id_Evaluation INTEGER PRIMARY KEY AUTOINCREMENT,
            Date_eval DATE,
            Note INTEGER,
            Commentaire TEXT,
            Id_Client INTEGER,
            FOREIGN KEY (Id_Client) REFERENCES Client(Id_Client)
        )`,
		`CREATE TABLE IF NOT EXISTS Chambre_Reservation (
            Id_Chambre INTEGER,
            Id_Reservation INTEGER,
            PRIMARY KEY (Id_Chambre, Id_Reservation),
            FOREIGN KEY (Id_Chambre) REFERENCES Chambre(Id_Chambre),
            FOREIGN KEY (Id_Reservation) REFERENCES Reservation(Id_Reservation)
        )`,
		`CREATE TABLE IF NOT EXISTS Prestation_Reservation (
            Id_Prestation INTEGER,
            Id_Reservation INTEGER,
            PRIMARY KEY (Id_Prestation, Id_Reservation),
            FOREIGN KEY (Id_Prestation) REFERENCES Prestation(Id_Prestation),
            FOREIGN KEY (Id_Reservation) REFERENCES Reservation(Id_Reservation)
        )`,

		// Внутренняя таблица очереди синхронизации, не часть исходной схемы
		`CREATE TABLE IF NOT EXISTS sync_queue (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_type TEXT NOT NULL,
            reservation_id INTEGER NOT NULL,
            payload TEXT,
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INTEGER NOT NULL DEFAULT 0,
            last_error TEXT,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            processed_at DATETIME,
            next_retry_at DATETIME
        )`,

		`CREATE INDEX IF NOT EXISTS idx_chambre_hotel ON Chambre(Id_Hotel)`,
		`CREATE INDEX IF NOT EXISTS idx_chambre_type ON Chambre(Id_Type)`,
		`CREATE INDEX IF NOT EXISTS idx_reservation_client ON Reservation(Id_Client)`,
		`CREATE INDEX IF NOT EXISTS idx_reservation_dates ON Reservation(Date_arrivee, Date_depart)`,
		`CREATE INDEX IF NOT EXISTS idx_chambre_reservation_res ON Chambre_Reservation(Id_Reservation)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluation_client ON Evaluation(Id_Client)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_queue_status ON sync_queue(status)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
