package sidemail

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
)

// pagedFetcher serves pages in order, cursor "cN" points at pages[N].
func pagedFetcher[T any](t *testing.T, pages [][]T, calls *int) *Page[T] {
	t.Helper()

	build := func(i int) *Page[T] {
		p := &Page[T]{Data: pages[i]}
		if i+1 < len(pages) {
			c := "c" + strconv.Itoa(i+1)
			p.HasMore = true
			p.PaginationCursorNext = &c
		}
		return p
	}

	first := build(0)
	first.fetch = func(ctx context.Context, cursor string) (*Page[T], error) {
		*calls++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var i int
		if _, err := fmt.Sscanf(cursor, "c%d", &i); err != nil || i >= len(pages) {
			t.Fatalf("unexpected cursor %q", cursor)
		}
		return build(i), nil
	}

	return first
}

func TestPage_All_SinglePage(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]string{{"item1", "item2", "item3"}}, &calls)

	var collected []string
	for item, err := range page.All(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		collected = append(collected, item)
	}

	if len(collected) != 3 {
		t.Errorf("expected 3 items, got %d", len(collected))
	}
	if calls != 0 {
		t.Errorf("expected no fetches for a single page, got %d", calls)
	}
}

func TestPage_All_MultiplePages(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]int{{1, 2}, {3, 4}, {5}}, &calls)

	var collected []int
	for item, err := range page.All(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		collected = append(collected, item)
	}

	want := []int{1, 2, 3, 4, 5}
	if len(collected) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(collected))
	}
	for i, item := range collected {
		if item != want[i] {
			t.Errorf("item[%d] = %v, want %v", i, item, want[i])
		}
	}

	if calls != 2 {
		t.Errorf("expected 2 fetcher calls, got %d", calls)
	}
}

func TestPage_All_EmptyResults(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]string{{}}, &calls)

	n := 0
	for _, err := range page.All(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n++
	}

	if n != 0 {
		t.Errorf("expected 0 items, got %d", n)
	}
}

func TestPage_All_SkipsEmptyIntermediatePage(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]string{{"a"}, {}, {"b"}}, &calls)

	var collected []string
	for item, err := range page.All(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		collected = append(collected, item)
	}

	if len(collected) != 2 || collected[0] != "a" || collected[1] != "b" {
		t.Errorf("collected = %v, want [a b]", collected)
	}
}

func TestPage_All_ErrorOnSecondPage(t *testing.T) {
	expectedErr := errors.New("second page error")
	next := "c1"
	page := &Page[string]{
		Data:                 []string{"item1", "item2"},
		HasMore:              true,
		PaginationCursorNext: &next,
		fetch: func(ctx context.Context, cursor string) (*Page[string], error) {
			return nil, expectedErr
		},
	}

	var collected []string
	var gotErr error
	for item, err := range page.All(context.Background()) {
		if err != nil {
			gotErr = err
			break
		}
		collected = append(collected, item)
	}

	if len(collected) != 2 {
		t.Errorf("expected 2 items before error, got %d", len(collected))
	}
	if !errors.Is(gotErr, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, gotErr)
	}
}

func TestPage_All_EarlyTermination(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]int{{1, 2, 3}, {4, 5}}, &calls)

	var collected []int
	for item, err := range page.All(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		collected = append(collected, item)
		if len(collected) == 2 {
			break
		}
	}

	if len(collected) != 2 {
		t.Errorf("expected 2 items, got %d", len(collected))
	}
	if calls != 0 {
		t.Errorf("next page must not be fetched before the current one is exhausted, got %d calls", calls)
	}
}

func TestPage_All_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	page := pagedFetcher(t, [][]int{{1, 2}, {3, 4}}, &calls)

	var collected []int
	var gotErr error
	for item, err := range page.All(ctx) {
		if err != nil {
			gotErr = err
			break
		}
		collected = append(collected, item)
		if len(collected) == 2 {
			cancel()
		}
	}

	if len(collected) != 2 {
		t.Errorf("expected 2 items before cancellation, got %d", len(collected))
	}
	if !errors.Is(gotErr, context.Canceled) {
		t.Errorf("expected context.Canceled error, got %v", gotErr)
	}
}

func TestPage_AutoPaginateEach(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]int{{1, 2}, {3, 4}, {5}}, &calls)

	var collected []int
	err := page.AutoPaginateEach(context.Background(), func(i int) error {
		collected = append(collected, i)
		return nil
	})
	if err != nil {
		t.Fatalf("AutoPaginateEach() error = %v", err)
	}

	if fmt.Sprint(collected) != "[1 2 3 4 5]" {
		t.Errorf("collected = %v, want [1 2 3 4 5]", collected)
	}
	if calls != 2 {
		t.Errorf("expected 2 fetcher calls, got %d", calls)
	}
}

func TestPage_AutoPaginateEach_CallbackError(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]int{{1, 2}, {3}}, &calls)
	stop := errors.New("stop")

	n := 0
	err := page.AutoPaginateEach(context.Background(), func(i int) error {
		n++
		if i == 2 {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Errorf("AutoPaginateEach() error = %v, want %v", err, stop)
	}
	if n != 2 {
		t.Errorf("callback called %d times, want 2", n)
	}
	if calls != 0 {
		t.Errorf("expected no fetches after callback error, got %d", calls)
	}
}

func TestIterator_Next(t *testing.T) {
	calls := 0
	page := pagedFetcher(t, [][]string{{"a", "b"}, {"c"}}, &calls)

	it := page.Iter()
	var collected []string
	for it.Next(context.Background()) {
		collected = append(collected, it.Item())

		if len(collected) == 2 && calls != 0 {
			t.Errorf("second page fetched early")
		}
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	if fmt.Sprint(collected) != "[a b c]" {
		t.Errorf("collected = %v, want [a b c]", collected)
	}
	if calls != 1 {
		t.Errorf("expected 1 fetch, got %d", calls)
	}

	if it.Next(context.Background()) {
		t.Error("Next() after exhaustion should return false")
	}
}

func TestIterator_ItemBeforeNext(t *testing.T) {
	it := (&Page[string]{Data: []string{"a"}}).Iter()

	if got := it.Item(); got != "" {
		t.Errorf("Item() before Next() = %q, want zero value", got)
	}
}

func TestPage_NextPage(t *testing.T) {
	t.Run("last page", func(t *testing.T) {
		page := &Page[int]{Data: []int{1}}

		_, err := page.NextPage(context.Background())
		if !errors.Is(err, ErrNoMorePages) {
			t.Errorf("NextPage() error = %v, want %v", err, ErrNoMorePages)
		}
	})

	t.Run("has more without cursor", func(t *testing.T) {
		page := &Page[int]{Data: []int{1}, HasMore: true}

		_, err := page.NextPage(context.Background())
		if !errors.Is(err, ErrMissingCursor) {
			t.Errorf("NextPage() error = %v, want %v", err, ErrMissingCursor)
		}
	})

	t.Run("keeps fetcher", func(t *testing.T) {
		calls := 0
		page := pagedFetcher(t, [][]int{{1}, {2}, {3}}, &calls)

		second, err := page.NextPage(context.Background())
		if err != nil {
			t.Fatalf("NextPage() error = %v", err)
		}
		third, err := second.NextPage(context.Background())
		if err != nil {
			t.Fatalf("NextPage() error = %v", err)
		}

		if third.Data[0] != 3 || third.HasMore {
			t.Errorf("third page = %+v", third)
		}
	})
}

func TestPage_NextPage_NilPage(t *testing.T) {
	var page *Page[int]

	_, err := page.NextPage(context.Background())
	if !errors.Is(err, ErrNoMorePages) {
		t.Errorf("NextPage() on nil page error = %v, want %v", err, ErrNoMorePages)
	}
}
