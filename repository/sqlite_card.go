package repository

import (
	"context"
	"fmt"

	"github.com/tiersept/example-app/database"
	"github.com/tiersept/example-app/models"
)

type sqliteCardRepo struct {
	db database.TxQuerier
}

// NewSQLiteCardRepo, constructor: interface döner.
func NewSQLiteCardRepo(db database.TxQuerier) CardRepository {
	return &sqliteCardRepo{db: db}
}

func (r *sqliteCardRepo) ListByUser(ctx context.Context, userID int64) ([]models.Card, error) {
	query := `SELECT id, user_id, number, expiry, cvv FROM cards WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.UserID, &c.Number, &c.Expiry, &c.CVV); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card rows: %w", err)
	}

	return cards, nil
}
