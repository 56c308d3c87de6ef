package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the expenses table and its indexes if they do not exist.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	schema := `
	CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL,
		amount NUMERIC(14, 2) NOT NULL,
		currency TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT,
		place TEXT,
		expense_date TIMESTAMPTZ NOT NULL,
		raw_text TEXT NOT NULL,
		source TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id);
	CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, expense_date DESC);
	`

	_, err := db.Exec(ctx, schema)
	return err
}
