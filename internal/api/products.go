package api

import (
	"context"
	"encoding/json"
	"fmt"

	"bunny-store/internal/domain"
)

// ProductsPage fetches a single page of the catalog with its pagination
// metadata intact.
func (c *Client) ProductsPage(ctx context.Context, page, pageSize int) (domain.Page[domain.Product], error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	raw, err := c.get(ctx, fmt.Sprintf("/api/products/?page=%d&page_size=%d", page, pageSize))
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return domain.DecodePage[domain.Product](raw)
}

// Products fetches the complete catalog, following pagination up to the
// configured safety limit.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	return collectAll[domain.Product](ctx, c, "/api/products/", c.maxPages)
}

// ProductByID fetches a single product. An empty id is rejected locally
// before any network call.
func (c *Client) ProductByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "product id is required"}
	}
	raw, err := c.get(ctx, fmt.Sprintf("/api/products/%s/", id))
	if err != nil {
		return nil, err
	}
	product := &domain.Product{}
	if err := json.Unmarshal(raw, product); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	return product, nil
}

// Categories fetches all categories. The endpoint serves either a bare
// array or a paginated envelope; callers always get a flat slice.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	return collectAll[domain.Category](ctx, c, "/api/categories/", c.maxPages)
}
