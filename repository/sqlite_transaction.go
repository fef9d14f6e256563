package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/tiersept/example-app/database"
	"github.com/tiersept/example-app/models"
)

type sqliteTransactionRepo struct {
	db database.TxQuerier
}

// NewSQLiteTransactionRepo, constructor: interface döner.
func NewSQLiteTransactionRepo(db database.TxQuerier) TransactionRepository {
	return &sqliteTransactionRepo{db: db}
}

// List, kullanıcının hareketlerini arama + sıralama + sayfalama ile döner.
//
// ORDER BY kolonu parametre olarak bağlanamaz; q.SortColumn() whitelist'ten
// geldiği için SQL'e doğrudan eklenir. Aynı değerli satırlar id ile aynı
// yönde sıralanır, sayfalar arası kayma olmaz.
func (r *sqliteTransactionRepo) List(ctx context.Context, userID int64, q models.TransactionQuery) ([]models.Transaction, error) {
	where, args := transactionFilter(userID, q.Search)

	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, account_id, amount, type, description, date
		FROM transactions
		WHERE %s
		ORDER BY %s %s, id %s
		LIMIT ? OFFSET ?`, where, q.SortColumn(), direction, direction)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Amount, &t.Type, &t.Description, &t.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

func (r *sqliteTransactionRepo) Count(ctx context.Context, userID int64, search string) (int, error) {
	where, args := transactionFilter(userID, search)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions WHERE "+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// transactionFilter, kullanıcı + opsiyonel arama koşulunu üretir.
// Arama description veya type üzerinde, büyük/küçük harf duyarsız alt dize eşleşmesidir.
func transactionFilter(userID int64, search string) (string, []any) {
	if search == "" {
		return "user_id = ?", []any{userID}
	}

	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	return `user_id = ? AND (lower(description) LIKE ? ESCAPE '\' OR lower(type) LIKE ? ESCAPE '\')`,
		[]any{userID, pattern, pattern}
}

// escapeLike, LIKE joker karakterlerini (% ve _) kullanıcı girdisinde literal yapar.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
