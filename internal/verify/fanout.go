package verify

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEachIndex applies fn to every index in [0,n). When parallel is false it
// runs sequentially, checking ctx for cancellation between iterations; when
// true it fans out across an errgroup.Group derived from ctx. It returns
// false if the run was cancelled before every index completed.
func forEachIndex(ctx context.Context, parallel bool, n int, fn func(i int)) bool {
	if !parallel {
		for i := 0; i < n; i++ {
			if ctx.Err() != nil {
				return false
			}
			fn(i)
		}
		return true
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			fn(i)
			return nil
		})
	}
	return g.Wait() == nil
}
