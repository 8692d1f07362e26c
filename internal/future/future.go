// Package future provides a minimal single-assignment future for running
// store calls off the caller's goroutine.
package future

import (
	"context"
	"fmt"
)

// Future holds the eventual result of an asynchronous computation.
// It resolves exactly once, with a value or with an error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on a new goroutine and returns a future for its result.
// A panic in fn fails the future instead of crashing the process.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.val, f.err = zero, fmt.Errorf("future: panic: %v", r)
			}
		}()
		f.val, f.err = fn()
	}()
	return f
}

// Completed returns a future already resolved with v.
func Completed[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)
	return f
}

// Failed returns a future already failed with err.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done is closed once the future has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or ctx is done. Giving up on the
// wait does not stop the underlying computation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Map returns a future resolving to fn applied to the value of f.
// If f fails, fn is not called and the returned future fails the same way.
func Map[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return Go(func() (U, error) {
		v, err := f.wait()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// Then switches to the future returned by fn once f has succeeded.
// If f fails, fn is not called and the returned future fails the same way.
func Then[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	return Go(func() (U, error) {
		v, err := f.wait()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v).wait()
	})
}

// AndThen discards the value of f and switches to the future returned by next.
// next is called only after f succeeded; if f fails, next is never called.
func AndThen[T, U any](f *Future[T], next func() *Future[U]) *Future[U] {
	return Then(f, func(T) *Future[U] {
		return next()
	})
}
