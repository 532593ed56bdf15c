package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is one branch of a Join: either a value or the error that branch
// produced.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the branch succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Join runs fn for every index in [0, n) with at most limit branches in
// flight and waits for all of them. A failing branch is recorded in its slot
// and never cancels its siblings. Output order matches index order.
func Join[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) []Result[T] {
	results := make([]Result[T], n)
	if n == 0 {
		return results
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			v, err := fn(ctx, i)
			results[i] = Result[T]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
