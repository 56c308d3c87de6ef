package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceKind tells whether an expense came from a typed message or a voice note.
type SourceKind string

const (
	SourceText  SourceKind = "TEXT"
	SourceVoice SourceKind = "VOICE"
)

// Well-known expense categories. The set is advisory: the model is asked to pick
// one of these, but anything it returns is stored as-is.
const (
	CategoryGroceries     = "groceries"
	CategoryTransport     = "transport"
	CategoryCafe          = "cafe"
	CategoryEntertainment = "entertainment"
	CategoryBills         = "bills"
	CategoryOther         = "other"
)

// Expense is a fully normalized, persisted-ready expense record. Once created it
// is never mutated; corrections would be new records.
type Expense struct {
	ID          uuid.UUID       `db:"id"`
	UserID      int64           `db:"user_id"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Category    string          `db:"category"`
	Description *string         `db:"description"`
	Place       *string         `db:"place"`
	ExpenseDate time.Time       `db:"expense_date"`
	RawText     string          `db:"raw_text"`
	Source      SourceKind      `db:"source"`
	CreatedAt   time.Time       `db:"created_at"`
}
