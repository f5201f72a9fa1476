package console

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LoadOp is a single fetch issued as part of a concurrent page load. Ops
// write their result into caller-owned state; the loader only coordinates.
type LoadOp func(ctx context.Context) error

// Loader runs independent fetches concurrently and waits for every one of
// them to settle before reporting. The default policy is all-or-nothing: any
// failed op fails the batch and none of the partial results should be
// applied by the caller. Individual ops can opt out via Guarded.
type Loader struct {
	mu      sync.Mutex
	loading bool
}

// Loading reports whether a batch is currently in flight. It is true from
// invocation until every op has settled, regardless of outcome.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Load starts every op concurrently and blocks until all have settled.
// Returns the first error observed; later ops still run to completion, so a
// failing batch never leaves goroutines behind.
func (l *Loader) Load(ctx context.Context, ops ...LoadOp) error {
	l.setLoading(true)
	defer l.setLoading(false)

	// A plain group: an op failure must not cancel its siblings, since the
	// console never cancels in-flight requests.
	var group errgroup.Group
	for _, op := range ops {
		op := op
		group.Go(func() error {
			return op(ctx)
		})
	}
	return group.Wait()
}

func (l *Loader) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}

// Guarded converts an op to partial-tolerance: when the op fails, fallback
// runs (typically installing an empty collection) and the batch proceeds as
// if the op had succeeded. The primary fetch of a page stays unguarded.
func Guarded(op LoadOp, fallback func(err error)) LoadOp {
	return func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			if fallback != nil {
				fallback(err)
			}
		}
		return nil
	}
}
