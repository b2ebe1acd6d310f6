package client

import "context"

// Result is the outcome of a client operation: a value on success, a reason
// on failure. Callers switch on Err.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// Async runs op on its own goroutine. The returned channel receives exactly
// one Result and is never closed.
func Async[T any](ctx context.Context, op func(context.Context) Result[T]) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		ch <- op(ctx)
	}()
	return ch
}
