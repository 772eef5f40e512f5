package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"bunny-store/internal/apitest"
	"bunny-store/internal/domain"
)

func TestCollectAllFollowsNextCursor(t *testing.T) {
	// Two pages: {p1,p2} with a next cursor, then {p3} without one.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			w.Write([]byte(`{"results":[{"id":"p3"}],"next":null,"count":3}`))
			return
		}
		w.Write([]byte(`{"results":[{"id":"p1"},{"id":"p2"}],"next":"/api/products/?page=2","count":3}`))
	}))
	defer srv.Close()

	products, err := collectAll[domain.Product](context.Background(), newTestClient(srv.URL, 0), "/api/products/", 0)
	if err != nil {
		t.Fatalf("collectAll failed: %v", err)
	}

	got := make([]string, len(products))
	for i, p := range products {
		got[i] = p.ID.String()
	}
	want := []string{"p1", "p2", "p3"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCollectAllSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":"only"}],"next":null,"count":1}`))
	}))
	defer srv.Close()

	products, err := collectAll[domain.Product](context.Background(), newTestClient(srv.URL, 0), "/api/products/", 0)
	if err != nil {
		t.Fatalf("collectAll failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != "only" {
		t.Fatalf("expected exactly the single page's results, got %+v", products)
	}
}

func TestCollectAllStopsAtSafetyLimit(t *testing.T) {
	// A server that always advertises another page.
	var fetches int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&fetches, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":[{"id":"p%d"}],"next":"/api/products/?page=%d","count":1000}`, n, n+1)
	}))
	defer srv.Close()

	const maxPages = 3
	products, err := collectAll[domain.Product](context.Background(), newTestClient(srv.URL, 0), "/api/products/", maxPages)
	if err != nil {
		t.Fatalf("hitting the safety limit must not be an error: %v", err)
	}
	if n := atomic.LoadInt64(&fetches); n != maxPages {
		t.Errorf("expected exactly %d fetches, got %d", maxPages, n)
	}
	if len(products) != maxPages {
		t.Errorf("expected the partial collection of %d items, got %d", maxPages, len(products))
	}
}

func TestCollectAllDefaultsToTenPages(t *testing.T) {
	var fetches int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&fetches, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":[{"id":"p%d"}],"next":"/api/products/?page=%d","count":1000}`, n, n+1)
	}))
	defer srv.Close()

	if _, err := collectAll[domain.Product](context.Background(), newTestClient(srv.URL, 0), "/api/products/", 0); err != nil {
		t.Fatalf("collectAll failed: %v", err)
	}
	if n := atomic.LoadInt64(&fetches); n != DefaultMaxPages {
		t.Errorf("expected %d fetches, got %d", DefaultMaxPages, n)
	}
}

func TestCollectAllPropagatesPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":"p1"}],"next":"/api/products/?page=2","count":2}`))
	}))
	defer srv.Close()

	products, err := collectAll[domain.Product](context.Background(), newTestClient(srv.URL, 0), "/api/products/", 0)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected the page failure to propagate, got %T: %v", err, err)
	}
	if products != nil {
		t.Errorf("no partial result on failure, got %+v", products)
	}
}

func TestCollectAllOrEmptySwallowsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	products := collectAllOrEmpty[domain.Product](context.Background(), newTestClient(srv.URL, 0), "/api/products/", 0)
	if products == nil || len(products) != 0 {
		t.Fatalf("expected an empty, non-nil collection, got %#v", products)
	}
}

func TestCollectAllAbsoluteNextCursor(t *testing.T) {
	// The fixture server emits absolute next URLs; they must be reduced
	// to paths against the configured base.
	fx := apitest.SampleCatalog()
	fx.PageSize = 2
	srv := apitest.NewServer(t, fx)

	products, err := newTestClient(srv.URL, 0).Products(context.Background())
	if err != nil {
		t.Fatalf("Products failed: %v", err)
	}
	if len(products) != len(fx.Products) {
		t.Fatalf("expected %d products, got %d", len(fx.Products), len(products))
	}
	for i := range products {
		if products[i].ID != fx.Products[i].ID {
			t.Errorf("server order not preserved at %d: %s != %s", i, products[i].ID, fx.Products[i].ID)
		}
	}
}

func TestRelativize(t *testing.T) {
	tests := []struct {
		cursor string
		want   string
	}{
		{"http://api.example.com/api/products/?page=2", "/api/products/?page=2"},
		{"/api/products/?page=2", "/api/products/?page=2"},
		{"https://api.example.com/api/reviews/", "/api/reviews/"},
	}
	for _, tt := range tests {
		got, err := relativize(tt.cursor)
		if err != nil {
			t.Fatalf("relativize(%q) failed: %v", tt.cursor, err)
		}
		if got != tt.want {
			t.Errorf("relativize(%q) = %q, want %q", tt.cursor, got, tt.want)
		}
	}
}
