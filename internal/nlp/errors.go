package nlp

import (
	"errors"
	"fmt"
)

// ErrEmptyModelOutput means the model replied but no JSON object could be
// located in its output.
var ErrEmptyModelOutput = errors.New("model returned empty output, no JSON object found")

// GatewayError reports a failed call to the inference endpoint: a transport
// error, a non-2xx status, or an empty body. The status and body are kept
// verbatim for diagnosis. The core never retries these.
type GatewayError struct {
	Status int
	Body   string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model gateway call failed: %v", e.Err)
	}
	return fmt.Sprintf("model gateway returned status %d: %s", e.Status, e.Body)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NonJSONResponseError means the endpoint did not actually return JSON,
// commonly an HTML error page from a proxy in front of it.
type NonJSONResponseError struct {
	ContentType string
}

func (e *NonJSONResponseError) Error() string {
	return fmt.Sprintf("endpoint returned non-JSON response (content-type: %s)", e.ContentType)
}

// UnexpectedOutputError means the model output, after extraction, does not
// start with '{'. Leading is the offending first character and Preview a
// bounded slice of the output for logs.
type UnexpectedOutputError struct {
	Leading rune
	Preview string
}

func (e *UnexpectedOutputError) Error() string {
	return fmt.Sprintf("expected a JSON object, got text starting with %q", e.Leading)
}

// MalformedJSONError wraps the json decoder diagnostic when the extracted
// object fails strict parsing.
type MalformedJSONError struct {
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("model returned malformed JSON: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }
