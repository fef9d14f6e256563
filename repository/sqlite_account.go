package repository

import (
	"context"
	"fmt"

	"github.com/tiersept/example-app/database"
	"github.com/tiersept/example-app/models"
)

type sqliteAccountRepo struct {
	db database.TxQuerier
}

// NewSQLiteAccountRepo, constructor: interface döner.
func NewSQLiteAccountRepo(db database.TxQuerier) AccountRepository {
	return &sqliteAccountRepo{db: db}
}

// ListWithBalances, bakiyeyi tek sorguda hesaplar.
//
// JOIN koşulunda hem account_id hem user_id eşleşmesi aranır: başka bir
// kullanıcının aynı hesaba yazılmış satırı bakiyeye karışmaz.
// LEFT JOIN + COALESCE: hareketi olmayan hesap 0 bakiyeyle gelir.
func (r *sqliteAccountRepo) ListWithBalances(ctx context.Context, userID int64) ([]models.Account, error) {
	query := `
		SELECT a.id, a.user_id, a.name, COALESCE(SUM(t.amount), 0) AS balance
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id AND t.user_id = a.user_id
		WHERE a.user_id = ?
		GROUP BY a.id, a.user_id, a.name
		ORDER BY a.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}
