package sidemail

import (
	"context"
	"errors"
	"iter"
)

var (
	// ErrNoMorePages is returned by [Page.NextPage] on the last page.
	ErrNoMorePages = errors.New("sidemail: no more pages")
	// ErrMissingCursor is returned when a page claims more results but carries no cursor.
	ErrMissingCursor = errors.New("sidemail: page has more results but no cursor")
)

// NextPage fetches the page following p.
func (p *Page[T]) NextPage(ctx context.Context) (*Page[T], error) {
	if p == nil || !p.HasMore {
		return nil, ErrNoMorePages
	}

	cursor := p.NextCursor()
	if cursor == "" {
		return nil, ErrMissingCursor
	}
	if p.fetch == nil {
		return nil, errors.New("sidemail: page is not attached to a client")
	}

	next, err := p.fetch(ctx, cursor)
	if err != nil {
		return nil, err
	}
	next.fetch = p.fetch

	return next, nil
}

// AutoPaginateEach calls fn for every item of p and all following pages, in order.
// It stops at the first error returned by fn or by a page fetch.
func (p *Page[T]) AutoPaginateEach(ctx context.Context, fn func(T) error) error {
	for item, err := range p.All(ctx) {
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}

// All returns an iterator over the items of p and all following pages.
// Pages are fetched lazily once the previous one is exhausted.
func (p *Page[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := p.Iter()
		for it.Next(ctx) {
			if !yield(it.Item(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(*new(T), err)
		}
	}
}

// Iter returns a pull iterator starting at the first item of p.
func (p *Page[T]) Iter() *Iterator[T] {
	return &Iterator[T]{page: p, index: -1}
}

// Iterator walks items across pages one at a time.
//
//	it := page.Iter()
//	for it.Next(ctx) {
//		use(it.Item())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[T any] struct {
	page  *Page[T]
	index int
	err   error
}

// Next advances to the next item, fetching the next page when the current one is
// exhausted. It returns false when iteration is done or failed, see [Iterator.Err].
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.err != nil || it.page == nil {
		return false
	}

	for {
		if it.index+1 < len(it.page.Data) {
			it.index++
			return true
		}
		if !it.page.HasMore {
			return false
		}

		next, err := it.page.NextPage(ctx)
		if err != nil {
			it.err = err
			return false
		}
		it.page = next
		it.index = -1
	}
}

// Item returns the current item.
func (it *Iterator[T]) Item() T {
	if it.page == nil || it.index < 0 || it.index >= len(it.page.Data) {
		return *new(T)
	}
	return it.page.Data[it.index]
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}
