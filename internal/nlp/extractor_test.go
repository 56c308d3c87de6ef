package nlp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeGateway struct {
	reply string
	err   error
}

func (f *fakeGateway) Generate(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

func newTestExtractor(reply string, err error) *Extractor {
	return NewExtractor(&fakeGateway{reply: reply, err: err}, zap.NewNop())
}

func TestExtractAllFields(t *testing.T) {
	reply := `{"amount":"500","currency":"RUB","category":"groceries","description":"groceries","place":"corner store","date":"2025-01-01T00:00:00+03:00"}`
	fields, err := newTestExtractor(reply, nil).Extract(context.Background(), "yesterday bought groceries for 500 rubles at the corner store")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if fields.Amount == nil || !fields.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Amount = %v, want 500", fields.Amount)
	}
	if fields.Currency == nil || *fields.Currency != "RUB" {
		t.Errorf("Currency = %v, want RUB", fields.Currency)
	}
	if fields.Category == nil || *fields.Category != "groceries" {
		t.Errorf("Category = %v, want groceries", fields.Category)
	}
	if fields.Place == nil || *fields.Place != "corner store" {
		t.Errorf("Place = %v, want corner store", fields.Place)
	}

	want, _ := time.Parse(time.RFC3339, "2025-01-01T00:00:00+03:00")
	if fields.Date == nil || !fields.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", fields.Date, want)
	}
}

func TestExtractAmountCoercion(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  *decimal.Decimal
	}{
		{
			name:  "quoted decimal string",
			reply: `{"amount": "12.50"}`,
			want:  decimalPtr("12.50"),
		},
		{
			name:  "bare number",
			reply: `{"amount": 99.90}`,
			want:  decimalPtr("99.90"),
		},
		{
			name:  "unparseable amount degrades to absent",
			reply: `{"amount": "abc", "currency": "USD"}`,
			want:  nil,
		},
		{
			name:  "null amount stays absent",
			reply: `{"amount": null}`,
			want:  nil,
		},
		{
			name:  "missing amount stays absent",
			reply: `{"currency": "USD"}`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := newTestExtractor(tt.reply, nil).Extract(context.Background(), "whatever")
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if tt.want == nil {
				if fields.Amount != nil {
					t.Errorf("Amount = %v, want absent", fields.Amount)
				}
				return
			}
			if fields.Amount == nil || !fields.Amount.Equal(*tt.want) {
				t.Errorf("Amount = %v, want %v", fields.Amount, tt.want)
			}
		})
	}
}

func TestExtractAmountExactness(t *testing.T) {
	fields, err := newTestExtractor(`{"amount": "12.50"}`, nil).Extract(context.Background(), "coffee")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	// 12.50 must survive exactly, with no binary floating-point drift.
	if got := fields.Amount.Mul(decimal.NewFromInt(100)).String(); got != "1250" {
		t.Errorf("amount*100 = %s, want 1250", got)
	}
}

func TestExtractBadDateDegrades(t *testing.T) {
	reply := `{"amount": "10", "date": "next tuesday"}`
	fields, err := newTestExtractor(reply, nil).Extract(context.Background(), "whatever")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fields.Date != nil {
		t.Errorf("Date = %v, want absent for unparseable input", fields.Date)
	}
	if fields.Amount == nil {
		t.Error("amount should still be parsed when only the date is bad")
	}
}

func TestExtractEmptyStringIsNotAbsent(t *testing.T) {
	fields, err := newTestExtractor(`{"description": ""}`, nil).Extract(context.Background(), "whatever")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fields.Description == nil || *fields.Description != "" {
		t.Errorf("Description = %v, want pointer to empty string", fields.Description)
	}
	if fields.Place != nil {
		t.Errorf("Place = %v, want absent", fields.Place)
	}
}

func TestExtractSurroundingText(t *testing.T) {
	fields, err := newTestExtractor(`Here you go: {"amount": 10} thanks`, nil).Extract(context.Background(), "ten bucks")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fields.Amount == nil || !fields.Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Amount = %v, want 10", fields.Amount)
	}
}

func TestExtractFailureClassification(t *testing.T) {
	t.Run("empty output", func(t *testing.T) {
		_, err := newTestExtractor("   ", nil).Extract(context.Background(), "whatever")
		if !errors.Is(err, ErrEmptyModelOutput) {
			t.Errorf("error = %v, want ErrEmptyModelOutput", err)
		}
	})

	t.Run("prose instead of JSON", func(t *testing.T) {
		_, err := newTestExtractor("I cannot help with that.", nil).Extract(context.Background(), "whatever")
		var unexpected *UnexpectedOutputError
		if !errors.As(err, &unexpected) {
			t.Fatalf("error = %v, want *UnexpectedOutputError", err)
		}
		if unexpected.Leading != 'I' {
			t.Errorf("Leading = %q, want 'I'", unexpected.Leading)
		}
	})

	t.Run("preview is bounded", func(t *testing.T) {
		_, err := newTestExtractor(strings.Repeat("x", 2000), nil).Extract(context.Background(), "whatever")
		var unexpected *UnexpectedOutputError
		if !errors.As(err, &unexpected) {
			t.Fatalf("error = %v, want *UnexpectedOutputError", err)
		}
		if len(unexpected.Preview) > maxPreviewLen {
			t.Errorf("Preview length = %d, want at most %d", len(unexpected.Preview), maxPreviewLen)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := newTestExtractor(`{"amount": }`, nil).Extract(context.Background(), "whatever")
		var malformed *MalformedJSONError
		if !errors.As(err, &malformed) {
			t.Fatalf("error = %v, want *MalformedJSONError", err)
		}
		if malformed.Unwrap() == nil {
			t.Error("MalformedJSONError should carry the decoder diagnostic")
		}
	})

	t.Run("gateway error propagated without retry", func(t *testing.T) {
		gatewayErr := &GatewayError{Status: 503, Body: "overloaded"}
		_, err := newTestExtractor("", gatewayErr).Extract(context.Background(), "whatever")
		var got *GatewayError
		if !errors.As(err, &got) || got.Status != 503 {
			t.Errorf("error = %v, want the original *GatewayError", err)
		}
	})
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
