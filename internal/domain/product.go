package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID is an opaque server-assigned identifier. The API emits ids as JSON
// numbers on some endpoints and strings on others, so decoding accepts both.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %q: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Product represents a catalog product as served by the storefront API.
// Price is nil when the product is quoted on contact rather than listed.
type Product struct {
	ID                 ID             `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Price              *float64       `json:"price"`
	OriginalPrice      *float64       `json:"original_price"`
	DiscountPercentage float64        `json:"discount_percentage"`
	Categories         []Category     `json:"categories"`
	Images             []ProductImage `json:"images"`
	Plans              []Plan         `json:"plans"`
	Rating             float64        `json:"rating"`
	ReviewCount        int            `json:"review_count"`
	IsFeatured         bool           `json:"is_featured"`
	IsTrending         bool           `json:"is_trending"`
	IsBestseller       bool           `json:"is_bestseller"`
	Stock              int            `json:"stock"`
	CreatedAt          time.Time      `json:"created_at"`
}

// EffectivePrice returns the listed price, treating contact-for-price
// products as zero for filtering and sorting purposes.
func (p *Product) EffectivePrice() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Discounted reports whether the product carries a real markdown: an
// original price strictly above the current listed price.
func (p *Product) Discounted() bool {
	return p.Price != nil && p.OriginalPrice != nil && *p.OriginalPrice > *p.Price
}

// ProductImage is a single entry in a product's ordered gallery.
type ProductImage struct {
	ID    ID     `json:"id"`
	Image string `json:"image"`
	Alt   string `json:"alt_text"`
}

// Plan is a purchase option attached to exactly one product.
type Plan struct {
	ID             ID      `json:"id"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"duration_months"`
}

// DurationLabel renders the plan length the way the storefront displays it.
func (p Plan) DurationLabel() string {
	if p.DurationMonths == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", p.DurationMonths)
}

// Category groups products. A product may belong to several categories and
// a category never owns its products.
type Category struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	ProductCount *int   `json:"product_count"`
}
