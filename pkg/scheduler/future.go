package scheduler

import "context"

// Future is the pending result of a queued Work.
type Future[T any] struct {
	c      <-chan T
	cancel context.CancelFunc
}

func newFuture[T any](c <-chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

// C delivers the result exactly once.
func (f *Future[T]) C() <-chan T {
	return f.c
}

// Stop cancels the context passed to the work.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the result is available or ctx is done. A ctx
// cancellation also stops the work.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-f.c:
		return v, nil
	case <-ctx.Done():
		f.cancel()
		var none T
		return none, ctx.Err()
	}
}
