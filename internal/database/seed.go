package database

import (
	"context"
	"fmt"
)

// Seed loads the reference fixture once. It is idempotent: when the Hotel
// relation already holds rows, nothing is inserted. Callers invoke it
// explicitly after NewDB; the read/write API never seeds on its own.
func (db *DB) Seed(ctx context.Context) error {
	var hotels int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Hotel`).Scan(&hotels); err != nil {
		return fmt.Errorf("failed to count hotels: %w", err)
	}
	if hotels > 0 {
		db.logger.Debug().Msg("seed skipped, reference data already present")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seed := []struct {
		query string
		rows  [][]any
	}{
		{
			query: `INSERT INTO Hotel (Id_Hotel, Ville, Pays, Code_postal) VALUES (?, ?, ?, ?)`,
			rows: [][]any{
				{1, "Paris", "France", 75001},
				{2, "Lyon", "France", 69002},
			},
		},
		{
			query: `INSERT INTO Type_Chambre (Id_Type, Type, Tarif) VALUES (?, ?, ?)`,
			rows: [][]any{
				{1, "Simple", 80.0},
				{2, "Double", 120.0},
			},
		},
		{
			query: `INSERT INTO Chambre (Id_Chambre, Numero, Etage, Fumeur, Id_Hotel, Id_Type) VALUES (?, ?, ?, ?, ?, ?)`,
			rows: [][]any{
				{1, 201, 2, 0, 1, 1},
				{2, 502, 5, 1, 1, 2},
				{3, 305, 3, 0, 2, 1},
				{4, 410, 4, 0, 2, 2},
				{5, 104, 1, 1, 2, 2},
				{6, 202, 2, 0, 1, 1},
				{7, 307, 3, 1, 1, 2},
				{8, 101, 1, 0, 1, 1},
			},
		},
		{
			query: `INSERT INTO Client (Id_Client, Adresse, Ville, Code_postal, Email, Telephone, Nom_complet) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rows: [][]any{
				{1, "12 Rue de Paris", "Paris", 75001, "jean.dupont@email.fr", "0612345678", "Jean Dupont"},
				{2, "5 Avenue Victor Hugo", "Lyon", 69002, "marie.leroy@email.fr", "0623456789", "Marie Leroy"},
				{3, "8 Boulevard Saint-Michel", "Marseille", 13005, "paul.moreau@email.fr", "0634567890", "Paul Moreau"},
				{4, "27 Rue Nationale", "Lille", 59800, "lucie.martin@email.fr", "0645678901", "Lucie Martin"},
				{5, "3 Rue des Fleurs", "Nice", 6000, "emma.giraud@email.fr", "0656789012", "Emma Giraud"},
			},
		},
		{
			query: `INSERT INTO Prestation (Id_Prestation, Prix, Description) VALUES (?, ?, ?)`,
			rows: [][]any{
				{1, 15.0, "Petit-déjeuner"},
				{2, 30.0, "Navette aéroport"},
				{3, 0.0, "Wi-Fi gratuit"},
				{4, 50.0, "Spa et bien-être"},
				{5, 20.0, "Parking sécurisé"},
			},
		},
		{
			query: `INSERT INTO Reservation (Id_Reservation, Date_arrivee, Date_depart, Id_Client) VALUES (?, ?, ?, ?)`,
			rows: [][]any{
				{1, "2025-06-15", "2025-06-18", 1},
				{2, "2025-07-01", "2025-07-05", 2},
				{3, "2025-08-10", "2025-08-14", 3},
				{4, "2025-09-05", "2025-09-07", 4},
				{5, "2025-09-20", "2025-09-25", 5},
				{7, "2025-11-12", "2025-11-14", 2},
				{9, "2026-01-15", "2026-01-18", 4},
				{10, "2026-02-01", "2026-02-05", 2},
			},
		},
		{
			query: `INSERT INTO Evaluation (Id_Evaluation, Date_eval, Note, Commentaire, Id_Client) VALUES (?, ?, ?, ?, ?)`,
			rows: [][]any{
				{1, "2025-06-15", 5, "Excellent séjour, personnel très accueillant.", 1},
				{2, "2025-07-01", 4, "Chambre propre, bon rapport qualité/prix.", 2},
				{3, "2025-08-10", 3, "Séjour correct mais bruyant la nuit.", 3},
				{4, "2025-09-05", 5, "Service impeccable, je recommande.", 4},
				{5, "2025-09-20", 4, "Très bon petit-déjeuner, hôtel bien situé.", 5},
			},
		},
		{
			query: `INSERT INTO Chambre_Reservation (Id_Chambre, Id_Reservation) VALUES (?, ?)`,
			rows: [][]any{
				{1, 1},
				{2, 2},
				{3, 3},
				{4, 4},
				{5, 5},
				{6, 7},
				{7, 9},
				{8, 10},
			},
		},
	}

	for _, group := range seed {
		for _, row := range group.rows {
			if _, err := tx.ExecContext(ctx, group.query, row...); err != nil {
				return fmt.Errorf("failed to seed row %v: %w", row, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	db.logger.Info().Msg("reference fixture seeded")
	return nil
}
