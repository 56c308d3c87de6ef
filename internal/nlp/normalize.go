package nlp

import (
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/models"
)

// Normalizer fills in business-level defaults when extraction yields partial
// data, producing a record that is always fully populated.
type Normalizer struct {
	// HomeCurrency is used when the utterance does not state a currency.
	HomeCurrency string
}

// Normalize applies safe defaults per field: zero amount, home currency,
// category "other" and now as the expense timestamp. Description and place
// pass through as-is, nil included. The caller supplies now so the function
// stays deterministic. Normalization cannot fail by construction.
func (n Normalizer) Normalize(fields *Fields, userID int64, rawText string, source models.SourceKind, now time.Time) models.Expense {
	exp := models.Expense{
		UserID:      userID,
		Amount:      decimal.Zero,
		Currency:    n.HomeCurrency,
		Category:    models.CategoryOther,
		Description: fields.Description,
		Place:       fields.Place,
		ExpenseDate: now,
		RawText:     rawText,
		Source:      source,
		CreatedAt:   now,
	}
	if fields.Amount != nil {
		exp.Amount = *fields.Amount
	}
	if fields.Currency != nil {
		exp.Currency = *fields.Currency
	}
	if fields.Category != nil {
		exp.Category = *fields.Category
	}
	if fields.Date != nil {
		exp.ExpenseDate = *fields.Date
	}
	return exp
}
