package catalog

import (
	"sort"
	"strings"

	"bunny-store/internal/domain"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	// SortDefault orders featured products first, otherwise preserving
	// the server-provided order.
	SortDefault   SortMode = "default"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortName      SortMode = "name"
	SortNewest    SortMode = "newest"
)

// DefaultMaxPrice is the upper bound of the price slider when no explicit
// range is chosen.
const DefaultMaxPrice = 100000

// Filter is the specification a product must satisfy to appear in a
// projected view. All criteria are combined as a conjunction. An empty
// Category or Query means "no filter" for that criterion.
type Filter struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Query    string
	Sort     SortMode
}

// DefaultFilter is the unfiltered storefront view.
func DefaultFilter() Filter {
	return Filter{MaxPrice: DefaultMaxPrice, Sort: SortDefault}
}

// Apply projects the full in-memory collection through the filter and sort
// specification. It is pure: the input slice is never mutated and identical
// inputs always produce an identical output.
func Apply(products []domain.Product, f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(&p, f) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		// Featured first, stable otherwise.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].IsFeatured && !out[j].IsFeatured
		})
	}
	return out
}

func matches(p *domain.Product, f Filter) bool {
	if f.Category != "" && !inCategory(p, f.Category) {
		return false
	}

	price := p.EffectivePrice()
	if price < f.MinPrice || price > f.MaxPrice {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		title := strings.ToLower(p.Title)
		description := strings.ToLower(p.Description)
		if !strings.Contains(title, q) && !strings.Contains(description, q) {
			return false
		}
	}
	return true
}

func inCategory(p *domain.Product, categoryID string) bool {
	for _, c := range p.Categories {
		if c.ID.String() == categoryID {
			return true
		}
	}
	return false
}
