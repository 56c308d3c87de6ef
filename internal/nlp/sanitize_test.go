package nlp

import (
	"errors"
	"testing"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean object unchanged",
			in:   `{"amount": 10}`,
			want: `{"amount": 10}`,
		},
		{
			name: "surrounding text stripped",
			in:   `Here you go: {"amount": 10} thanks`,
			want: `{"amount": 10}`,
		},
		{
			name: "no braces returns trimmed input",
			in:   "  I cannot help with that.  ",
			want: "I cannot help with that.",
		},
		{
			name: "closing brace before opening brace",
			in:   "} not an object {",
			want: "} not an object {",
		},
		{
			name: "nested object kept whole",
			in:   `note {"a": {"b": 1}} bye`,
			want: `{"a": {"b": 1}}`,
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractObject(tt.in)
			if got != tt.want {
				t.Errorf("ExtractObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractObjectIdempotent(t *testing.T) {
	in := `{"amount": 10, "currency": "RUB"}`
	once := ExtractObject(in)
	twice := ExtractObject(once)
	if once != in || twice != once {
		t.Errorf("ExtractObject is not idempotent: %q -> %q -> %q", in, once, twice)
	}
}

func TestEnsureJSONBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     bool
	}{
		{
			name:        "json response",
			contentType: "application/json",
			body:        `{"ok": true}`,
			wantErr:     false,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{}`,
			wantErr:     false,
		},
		{
			name:        "html error page",
			contentType: "text/html",
			body:        "<html>502 Bad Gateway</html>",
			wantErr:     true,
		},
		{
			name:        "json content type but html body",
			contentType: "application/json",
			body:        "  <html>oops</html>",
			wantErr:     true,
		},
		{
			name:        "plain text",
			contentType: "text/plain",
			body:        "rate limit exceeded",
			wantErr:     true,
		},
		{
			name:        "empty json body accepted here",
			contentType: "application/json",
			body:        "",
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureJSONBody(tt.contentType, tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EnsureJSONBody(%q, %q) error = %v, wantErr %v", tt.contentType, tt.body, err, tt.wantErr)
			}
			if err != nil {
				var nonJSON *NonJSONResponseError
				if !errors.As(err, &nonJSON) {
					t.Fatalf("expected *NonJSONResponseError, got %T", err)
				}
				if nonJSON.ContentType != tt.contentType {
					t.Errorf("ContentType = %q, want %q", nonJSON.ContentType, tt.contentType)
				}
			}
		})
	}
}
