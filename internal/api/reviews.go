package api

import (
	"context"
	"encoding/json"
	"fmt"

	"bunny-store/internal/domain"

	"go.uber.org/zap"
)

// Reviews fetches all reviews across the store.
func (c *Client) Reviews(ctx context.Context) ([]domain.Review, error) {
	return collectAll[domain.Review](ctx, c, "/api/reviews/", c.maxPages)
}

// ProductReviews fetches the reviews for one product, filtered server-side.
// An empty product id is rejected locally before any network call.
func (c *Client) ProductReviews(ctx context.Context, productID domain.ID) ([]domain.Review, error) {
	if productID == "" {
		return nil, &ValidationError{Field: "product", Message: "product id is required"}
	}
	return collectAll[domain.Review](ctx, c, fmt.Sprintf("/api/reviews/?product=%s", productID), c.maxPages)
}

// ProductReviewsOrEmpty is the degraded variant of ProductReviews: failures
// are logged and an empty slice returned. For pages where reviews are
// decoration, not the point.
func (c *Client) ProductReviewsOrEmpty(ctx context.Context, productID domain.ID) []domain.Review {
	if productID == "" {
		return []domain.Review{}
	}
	return collectAllOrEmpty[domain.Review](ctx, c, fmt.Sprintf("/api/reviews/?product=%s", productID), c.maxPages)
}

// ReviewStats fetches store-wide review aggregates. Best-effort: any
// failure is logged and nil returned, since the endpoint is optional and
// its absence must stay invisible to the user.
func (c *Client) ReviewStats(ctx context.Context) *domain.ReviewStats {
	raw, err := c.get(ctx, "/api/review-stats/")
	if err != nil {
		c.logger.Warn("review stats unavailable", zap.Error(err))
		return nil
	}
	stats := &domain.ReviewStats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		c.logger.Warn("review stats malformed", zap.Error(err))
		return nil
	}
	return stats
}
