package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Flight collapses concurrent calls for the same key into one. A caller
// whose context ends stops waiting; the shared call keeps running for the
// others and is not cancelled with it.
type Flight[T any] struct {
	group singleflight.Group
}

// Do runs fn once per in-flight key and reports whether the result was
// shared with another caller.
func (f *Flight[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	ch := f.group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Shared, res.Err
		}
		out, _ := res.Val.(T)
		return out, res.Shared, nil
	}
}

// Forget drops key so the next Do starts a fresh call.
func (f *Flight[T]) Forget(key string) {
	f.group.Forget(key)
}
