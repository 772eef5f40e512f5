package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"bunny-store/internal/config"

	"go.uber.org/zap"
)

func newTestClient(baseURL string, maxPages int) *Client {
	return New(config.APIConfig{BaseURL: baseURL, MaxPages: maxPages}, zap.NewNop())
}

func TestTrailingSlashNormalization(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	for _, base := range []string{srv.URL, srv.URL + "/", srv.URL + "///"} {
		if _, err := newTestClient(base, 0).get(ctx, "/api/whatsapp/"); err != nil {
			t.Fatalf("request with base %q failed: %v", base, err)
		}
	}

	for _, url := range seen {
		if url != seen[0] {
			t.Fatalf("bases did not normalize to the same URL: %v", seen)
		}
	}
}

func TestLeadingSlashIdempotent(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	ctx := context.Background()
	for _, path := range []string{"/api/x", "api/x", "//api/x"} {
		if _, err := c.get(ctx, path); err != nil {
			t.Fatalf("request for path %q failed: %v", path, err)
		}
	}

	for _, path := range seen {
		if path != "/api/x" {
			t.Fatalf("paths did not normalize: %v", seen)
		}
	}
}

func TestHTTPErrorMessageFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).get(context.Background(), "/api/products/")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", httpErr.StatusCode)
	}
	if httpErr.Message != "Internal Server Error" {
		t.Errorf("expected body as message, got %q", httpErr.Message)
	}
}

func TestHTTPErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).get(context.Background(), "/api/products/")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.Message != "HTTP 503 Service Unavailable" {
		t.Errorf("expected fallback message, got %q", httpErr.Message)
	}
}

func TestHTTPErrorBodyTruncatedTo300(t *testing.T) {
	long := strings.Repeat("x", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, long, http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).get(context.Background(), "/api/products/")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if len(httpErr.Message) != 300 {
		t.Errorf("expected 300-char message, got %d chars", len(httpErr.Message))
	}
}

func TestHTTPErrorTruncationKeepsValidUTF8(t *testing.T) {
	// One leading ASCII byte shifts every two-byte rune off an even
	// offset, so the 300-byte cut lands mid-rune.
	body := "x" + strings.Repeat("é", 300)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, body, http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).get(context.Background(), "/api/products/")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if len(httpErr.Message) > 300 {
		t.Errorf("message exceeds 300 bytes: %d", len(httpErr.Message))
	}
	if !utf8.ValidString(httpErr.Message) {
		t.Errorf("message is not valid UTF-8: %q", httpErr.Message)
	}
}

func TestContentTypeError(t *testing.T) {
	body := "<html><head><title>502 Bad Gateway</title></head><body>upstream not reachable right now, sorry</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).get(context.Background(), "/api/products/")

	var ctErr *ContentTypeError
	if !errors.As(err, &ctErr) {
		t.Fatalf("expected *ContentTypeError, got %T: %v", err, err)
	}
	if !strings.Contains(ctErr.ContentType, "text/html") {
		t.Errorf("expected declared content type, got %q", ctErr.ContentType)
	}
	if ctErr.Snippet != body[:80] {
		t.Errorf("expected first 80 body chars, got %q", ctErr.Snippet)
	}
}

func TestRequestErrorOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL, 0).get(context.Background(), "/api/products/")

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T: %v", err, err)
	}
	if reqErr.Unwrap() == nil {
		t.Error("transport error should wrap the underlying failure")
	}
}

func TestProductByIDEmptyIDMakesNoNetworkCall(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).ProductByID(context.Background(), "")

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("expected zero network calls, got %d", n)
	}
}

func TestProductReviewsEmptyIDRejectedLocally(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).ProductReviews(context.Background(), "")

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("expected zero network calls, got %d", n)
	}
}

func TestAcceptHeaderSetAndOverridable(t *testing.T) {
	var accepts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accepts = append(accepts, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	ctx := context.Background()

	if _, err := c.get(ctx, "/api/whatsapp/"); err != nil {
		t.Fatalf("default request failed: %v", err)
	}
	custom := http.Header{}
	custom.Set("Accept", "application/json; version=2")
	if _, err := c.Do(ctx, Request{Path: "/api/whatsapp/", Header: custom}); err != nil {
		t.Fatalf("custom-header request failed: %v", err)
	}

	if accepts[0] != "application/json" {
		t.Errorf("expected default Accept header, got %q", accepts[0])
	}
	if accepts[1] != "application/json; version=2" {
		t.Errorf("caller headers must win, got %q", accepts[1])
	}
}
