package database

import (
	"context"
	"fmt"

	"hotelier/internal/models"
)

func (db *DB) CreateEvaluation(ctx context.Context, eval *models.Evaluation) error {
	query := `INSERT INTO Evaluation (Date_eval, Note, Commentaire, Id_Client) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		eval.Date.Format(models.DateLayout),
		eval.Rating,
		eval.Comment,
		eval.ClientID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to create evaluation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	eval.ID = id
	return nil
}

func (db *DB) ListEvaluations(ctx context.Context) ([]models.Evaluation, error) {
	query := `SELECT Id_Evaluation, Date_eval, Note, Commentaire, Id_Client FROM Evaluation ORDER BY Id_Evaluation`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evals []models.Evaluation
	for rows.Next() {
		var e models.Evaluation
		if err := rows.Scan(&e.ID, &e.Date, &e.Rating, &e.Comment, &e.ClientID); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		e.Date = asDay(e.Date)
		evals = append(evals, e)
	}
	return evals, rows.Err()
}
