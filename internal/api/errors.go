package api

import (
	"fmt"
	"unicode/utf8"
)

// HTTPError is a non-success response from the upstream API. Message is the
// response body truncated to 300 characters when readable, otherwise a
// generic "HTTP {status} {text}" line.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ContentTypeError is a success response whose body is not JSON, typically
// an HTML error page served by a misconfigured proxy in front of the API.
type ContentTypeError struct {
	ContentType string
	Snippet     string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("expected JSON, got %s. Response: %s", e.ContentType, e.Snippet)
}

// RequestError is a transport-level failure: the request never produced a
// response (DNS failure, refused connection, cancelled context).
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ValidationError is a locally rejected argument. No network call is made
// when one is returned; the caller can always recover by fixing the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
