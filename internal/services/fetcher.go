package services

import "context"

// Fetcher loads T from the origin for one set of call arguments. Method names
// the call and becomes part of the cache key.
type Fetcher[A, T any] interface {
	Method() string
	Fetch(ctx context.Context, args A) (*T, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc[A, T any] struct {
	Name string
	Fn   func(ctx context.Context, args A) (*T, error)
}

func (f FetcherFunc[A, T]) Method() string { return f.Name }

func (f FetcherFunc[A, T]) Fetch(ctx context.Context, args A) (*T, error) {
	return f.Fn(ctx, args)
}
