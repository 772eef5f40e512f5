// Package apitest runs an in-process stand-in for the upstream storefront
// API, serving canned catalog data over the same routes and response
// shapes the real service uses.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"bunny-store/internal/domain"

	"github.com/go-chi/chi/v5"
)

// Fixtures is the canned data the fake upstream serves.
type Fixtures struct {
	Products       []domain.Product
	Categories     []domain.Category
	Reviews        []domain.Review
	Stats          *domain.ReviewStats
	WhatsAppNumber string

	// PageSize is the server-side page size for /api/products/ when the
	// client sends no page_size. Zero serves everything on one page.
	PageSize int
	// BareArrays serves list endpoints as bare JSON arrays instead of
	// the {results, next, count} envelope.
	BareArrays bool
}

// NewServer starts a fake upstream serving the fixtures and registers its
// shutdown with the test.
func NewServer(t *testing.T, fx Fixtures) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(Handler(fx))
	t.Cleanup(srv.Close)
	return srv
}

// Handler builds the fake upstream's router. Split out from NewServer so
// callers can wrap it, e.g. with a request counter.
func Handler(fx Fixtures) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/products/", func(w http.ResponseWriter, req *http.Request) {
		page := queryInt(req, "page", 1)
		size := queryInt(req, "page_size", fx.PageSize)
		if size <= 0 {
			size = len(fx.Products)
		}
		serveSlice(w, req, "/api/products/", fx.Products, page, size)
	})

	r.Get("/api/products/{id}/", func(w http.ResponseWriter, req *http.Request) {
		id := domain.ID(chi.URLParam(req, "id"))
		for i := range fx.Products {
			if fx.Products[i].ID == id {
				writeJSON(w, fx.Products[i])
				return
			}
		}
		http.Error(w, "product not found", http.StatusNotFound)
	})

	r.Get("/api/categories/", func(w http.ResponseWriter, req *http.Request) {
		serveList(w, fx, fx.Categories)
	})

	r.Get("/api/reviews/", func(w http.ResponseWriter, req *http.Request) {
		reviews := fx.Reviews
		if productID := req.URL.Query().Get("product"); productID != "" {
			filtered := []domain.Review{}
			for _, rv := range fx.Reviews {
				if rv.ProductID.String() == productID {
					filtered = append(filtered, rv)
				}
			}
			reviews = filtered
		}
		serveList(w, fx, reviews)
	})

	r.Get("/api/review-stats/", func(w http.ResponseWriter, req *http.Request) {
		if fx.Stats == nil {
			http.Error(w, "stats not available", http.StatusNotFound)
			return
		}
		writeJSON(w, fx.Stats)
	})

	r.Get("/api/whatsapp/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]string{"whatsapp_number": fx.WhatsAppNumber})
	})

	return r
}

func serveSlice[T any](w http.ResponseWriter, req *http.Request, path string, items []T, page, size int) {
	start := (page - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	var next *string
	if end < len(items) {
		url := fmt.Sprintf("http://%s%s?page=%d&page_size=%d", req.Host, path, page+1, size)
		next = &url
	}
	writeJSON(w, domain.Page[T]{Results: items[start:end], Next: next, Count: len(items)})
}

func serveList[T any](w http.ResponseWriter, fx Fixtures, items []T) {
	if fx.BareArrays {
		writeJSON(w, items)
		return
	}
	writeJSON(w, domain.Page[T]{Results: items, Count: len(items)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func queryInt(req *http.Request, key string, fallback int) int {
	if raw := req.URL.Query().Get(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

// SampleCatalog is a small, stable fixture set shared across tests.
func SampleCatalog() Fixtures {
	price := func(v float64) *float64 { return &v }
	count := func(n int) *int { return &n }
	at := func(day int) time.Time {
		return time.Date(2025, time.March, day, 12, 0, 0, 0, time.UTC)
	}

	return Fixtures{
		Products: []domain.Product{
			{
				ID:          "1",
				Title:       "Zenith Suite",
				Description: "All-in-one productivity toolkit",
				Price:       price(1500),
				Categories:  []domain.Category{{ID: "10", Name: "Productivity"}},
				Plans: []domain.Plan{
					{ID: "101", Title: "Monthly", Price: 1500, DurationMonths: 1},
					{ID: "102", Title: "Yearly", Price: 12000, DurationMonths: 12},
				},
				IsFeatured: true,
				CreatedAt:  at(1),
			},
			{
				ID:            "2",
				Title:         "Apex Pro",
				Description:   "Professional design bundle",
				Price:         price(2500),
				OriginalPrice: price(4000),
				Categories:    []domain.Category{{ID: "11", Name: "Design"}},
				Plans: []domain.Plan{
					{ID: "201", Title: "Standard", Price: 2500, DurationMonths: 3},
				},
				CreatedAt: at(5),
			},
			{
				ID:          "3",
				Title:       "Widget Basic",
				Description: "Entry level utilities",
				Price:       price(500),
				Categories:  []domain.Category{{ID: "10", Name: "Productivity"}},
				CreatedAt:   at(3),
			},
			{
				ID:          "4",
				Title:       "Enterprise Custom",
				Description: "Tailored deployments, contact for price",
				Categories:  []domain.Category{{ID: "12", Name: "Enterprise"}},
				CreatedAt:   at(2),
			},
		},
		Categories: []domain.Category{
			{ID: "10", Name: "Productivity", ProductCount: count(2)},
			{ID: "11", Name: "Design", ProductCount: count(1)},
			{ID: "12", Name: "Enterprise", ProductCount: count(1)},
		},
		Reviews: []domain.Review{
			{ID: "501", ProductID: "1", Rating: 5, Comment: "Excellent", CustomerName: "Ayesha", Verified: true, CreatedAt: at(10)},
			{ID: "502", ProductID: "1", Rating: 4, Comment: "Solid value", CustomerName: "Bilal", CreatedAt: at(11)},
			{ID: "503", ProductID: "2", Rating: 5, Comment: "Worth it", CustomerName: "Chris", Location: "Karachi", CreatedAt: at(12)},
		},
		Stats: &domain.ReviewStats{
			TotalReviews:  3,
			AverageRating: 4.7,
			FiveStar:      2,
			FourStar:      1,
		},
		WhatsAppNumber: "+923001234567",
	}
}
