package sidemail

import "context"

// Page represents one page of a paginated list or search response.
type Page[T any] struct {
	// Data holds the items of this page.
	Data []T `json:"data"`
	// HasMore reports whether another page follows.
	HasMore bool `json:"hasMore"`
	// PaginationCursorNext identifies the next page, nil on the last page.
	PaginationCursorNext *string `json:"paginationCursorNext"`

	fetch pageFetcher[T]
}

// pageFetcher fetches the page identified by cursor.
type pageFetcher[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// NextCursor returns the cursor of the next page or "" if there is none.
func (p *Page[T]) NextCursor() string {
	if p == nil || p.PaginationCursorNext == nil {
		return ""
	}
	return *p.PaginationCursorNext
}

// ListContactsParams represents pagination parameters for listing contacts.
type ListContactsParams struct {
	// PaginationCursorNext continues a previous listing.
	PaginationCursorNext string `url:"paginationCursorNext,omitempty"`
	// Limit caps the number of contacts per page.
	Limit int `url:"limit,omitempty"`
}
