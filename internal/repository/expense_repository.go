package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"spendlog/internal/models"
)

var expenseColumns = []string{
	"id", "user_id", "amount", "currency", "category", "description",
	"place", "expense_date", "raw_text", "source", "created_at",
}

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends one expense record. Records are never updated afterwards.
func (r *ExpenseRepository) Create(ctx context.Context, exp *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns(expenseColumns...).
		Values(exp.ID, exp.UserID, exp.Amount, exp.Currency, exp.Category, exp.Description,
			exp.Place, exp.ExpenseDate, exp.RawText, exp.Source, exp.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListRecent returns the user's most recent expenses, newest first.
func (r *ExpenseRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("expense_date DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

// ListBetween returns the user's expenses within [from, to], newest first.
func (r *ExpenseRepository) ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"expense_date": from}).
		Where(squirrel.LtOrEq{"expense_date": to}).
		OrderBy("expense_date DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

func (r *ExpenseRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Expense, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(
			&exp.ID, &exp.UserID, &exp.Amount, &exp.Currency, &exp.Category, &exp.Description,
			&exp.Place, &exp.ExpenseDate, &exp.RawText, &exp.Source, &exp.CreatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, &exp)
	}

	return expenses, rows.Err()
}
