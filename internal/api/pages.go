package api

import (
	"context"
	"fmt"
	"net/url"

	"bunny-store/internal/domain"

	"go.uber.org/zap"
)

// DefaultMaxPages bounds how many pages the accumulator follows when
// assembling a full collection. Hitting the bound is not an error; the
// partial collection gathered so far is returned. It exists to cap the work
// done against a misbehaving or enormous upstream.
const DefaultMaxPages = 10

// collectAll fetches the page at path and follows next cursors, appending
// results in server order, until a page has no next cursor or maxPages
// fetches have been made. Any page failure fails the whole accumulation.
func collectAll[T any](ctx context.Context, c *Client, path string, maxPages int) ([]T, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var all []T
	next := path
	for fetched := 0; fetched < maxPages; fetched++ {
		raw, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		page, err := domain.DecodePage[T](raw)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if !page.HasNext() {
			return all, nil
		}
		next, err = relativize(*page.Next)
		if err != nil {
			return nil, err
		}
	}
	c.logger.Warn("pagination stopped at safety limit",
		zap.String("path", path),
		zap.Int("max_pages", maxPages),
		zap.Int("items", len(all)),
	)
	return all, nil
}

// collectAllOrEmpty is the degraded variant: any failure is logged and an
// empty collection returned. Only for call sites with no recovery path
// where an empty view beats a failed one.
func collectAllOrEmpty[T any](ctx context.Context, c *Client, path string, maxPages int) []T {
	items, err := collectAll[T](ctx, c, path, maxPages)
	if err != nil {
		c.logger.Warn("collection fetch failed, returning empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return []T{}
	}
	return items
}

// relativize reduces a next-page cursor, which the server may express as an
// absolute URL, to the path and query resolved against the configured base.
func relativize(cursor string) (string, error) {
	u, err := url.Parse(cursor)
	if err != nil {
		return "", fmt.Errorf("invalid next cursor %q: %w", cursor, err)
	}
	path := u.Path
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path, nil
}
