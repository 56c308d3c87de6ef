package nlp

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fields holds the loosely typed expense candidates parsed out of a model
// reply, before any defaults are applied. Every field is independently
// optional; nil means the model gave no usable value, which is distinct from
// an empty string.
type Fields struct {
	Amount      *decimal.Decimal
	Currency    *string
	Category    *string
	Description *string
	Place       *string
	Date        *time.Time
}
