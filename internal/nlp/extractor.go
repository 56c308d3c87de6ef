package nlp

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Gateway sends a rendered prompt to the text-generation endpoint and returns
// the model's raw completion.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extractor turns a raw user utterance into loosely typed expense fields by
// prompting the model and parsing its JSON reply. It holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	gateway Gateway
	logger  *zap.Logger
}

func NewExtractor(gateway Gateway, logger *zap.Logger) *Extractor {
	return &Extractor{
		gateway: gateway,
		logger:  logger,
	}
}

// modelReply mirrors the JSON object the prompt asks for. Amount stays raw
// because models return it both as a number and as a quoted string.
type modelReply struct {
	Amount      json.RawMessage `json:"amount"`
	Currency    *string         `json:"currency"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Place       *string         `json:"place"`
	Date        *string         `json:"date"`
}

// Extract builds the prompt, calls the gateway and parses the reply. Gateway
// failures and garbled JSON structure abort with a typed error; a single
// unparseable field (amount, date) is only logged and left nil, since partial
// data beats no data and the normalizer supplies defaults.
func (e *Extractor) Extract(ctx context.Context, utterance string) (*Fields, error) {
	prompt := BuildPrompt(utterance, time.Now())

	raw, err := e.gateway.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("model raw output", zap.String("output", preview(raw)))

	cleaned := strings.TrimSpace(ExtractObject(raw))
	if cleaned == "" {
		e.logger.Error("model output contains no JSON", zap.String("output", preview(raw)))
		return nil, ErrEmptyModelOutput
	}
	if cleaned[0] != '{' {
		leading, _ := utf8.DecodeRuneInString(cleaned)
		e.logger.Error("model output is not a JSON object",
			zap.String("leading", string(leading)),
			zap.String("output", preview(cleaned)),
		)
		return nil, &UnexpectedOutputError{Leading: leading, Preview: preview(cleaned)}
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		e.logger.Error("failed to parse JSON from model output",
			zap.String("output", preview(cleaned)),
			zap.Error(err),
		)
		return nil, &MalformedJSONError{Err: err}
	}

	return &Fields{
		Amount:      e.coerceAmount(reply.Amount),
		Currency:    reply.Currency,
		Category:    reply.Category,
		Description: reply.Description,
		Place:       reply.Place,
		Date:        e.coerceDate(reply.Date),
	}, nil
}

func (e *Extractor) coerceAmount(raw json.RawMessage) *decimal.Decimal {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	text := strings.TrimSpace(string(raw))
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Not a JSON string, assume a bare number literal.
		s = text
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		e.logger.Warn("cannot parse amount from model output",
			zap.String("amount", text),
			zap.Error(err),
		)
		return nil
	}
	return &d
}

func (e *Extractor) coerceDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}

	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		e.logger.Warn("cannot parse date from model output",
			zap.String("date", *raw),
			zap.Error(err),
		)
		return nil
	}
	return &t
}
