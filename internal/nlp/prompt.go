package nlp

import (
	"fmt"
	"time"
)

// promptTemplate fixes the JSON schema the model must fill in. Slots: today's
// date, the raw user utterance.
const promptTemplate = `You are a strict parser of personal expense phrases. The user writes an informal message, in any language, about money they spent (amount, currency, category, date, comment, place of purchase).

You MUST reply with exactly ONE JSON object and NOTHING else. No explanations. No markdown. Use this format:

{
  "amount": <number, dot as decimal separator>,
  "currency": "<three-letter currency code, e.g. RUB, USD, EUR>",
  "category": "<one of: groceries, transport, cafe, entertainment, bills, other>",
  "description": "<short comment about the expense>",
  "place": "<where the money was spent, e.g. 'corner store' or 'KFC downtown'>",
  "date": "<expense date in ISO-8601, e.g. 2025-12-04T10:15:30+03:00>"
}

If the date is not stated explicitly, use today's date: %s.

User message: "%s"

Return ONLY the JSON object, with no text before or after it.`

// BuildPrompt renders the extraction prompt around the raw utterance. The
// current date is injected by the caller so the function stays deterministic.
func BuildPrompt(utterance string, today time.Time) string {
	return fmt.Sprintf(promptTemplate, today.Format("2006-01-02"), utterance)
}
