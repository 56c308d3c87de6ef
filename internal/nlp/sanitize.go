package nlp

import "strings"

// maxPreviewLen bounds how much raw model output ends up in logs and errors.
const maxPreviewLen = 500

// ExtractObject cuts the JSON object out of raw model output that may carry
// explanatory text around it. It takes the substring from the first '{' to the
// last '}' when the last one comes strictly after the first; otherwise it
// returns the trimmed input unchanged so downstream validation can fail with a
// clear message. This is a best-effort heuristic, not a parser: unbalanced
// braces outside the outermost pair are not handled.
func ExtractObject(text string) string {
	trimmed := strings.TrimSpace(text)
	first := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")
	if first != -1 && last > first {
		return trimmed[first : last+1]
	}
	return trimmed
}

// EnsureJSONBody checks that a response is plausibly JSON before any parsing
// is attempted. Upstream failures (auth errors, rate limits, outages) often
// come back as HTML or plain text, and a body starting with '<' is a strong
// signal of an HTML error page.
func EnsureJSONBody(contentType, body string) error {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") ||
		(trimmed != "" && trimmed[0] == '<') {
		return &NonJSONResponseError{ContentType: contentType}
	}
	return nil
}

func preview(s string) string {
	if len(s) > maxPreviewLen {
		return s[:maxPreviewLen]
	}
	return s
}
