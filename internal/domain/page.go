package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the list-response envelope the API uses for paginated resources:
// results plus a next-page cursor and a total count.
type Page[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next"`
	Count   int     `json:"count"`
}

// HasNext reports whether the server advertised a further page.
func (p Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// DecodePage decodes a list response into the canonical envelope. Some
// endpoints return a bare JSON array instead of the envelope; both shapes
// are normalized here so nothing deeper in the call stack branches on shape.
func DecodePage[T any](data []byte) (Page[T], error) {
	var page Page[T]
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return page, fmt.Errorf("empty list response")
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Results); err != nil {
			return page, fmt.Errorf("decode list: %w", err)
		}
		page.Count = len(page.Results)
		return page, nil
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return page, fmt.Errorf("decode page envelope: %w", err)
	}
	return page, nil
}
