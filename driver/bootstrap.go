package driver

import (
	"context"
	"sync"
)

// Bootstrap runs an initialization function exactly once, after a ready
// signal. Later calls return the first result without running it again.
type Bootstrap struct {
	once sync.Once
	err  error
}

// Run waits for ready (a nil or closed channel counts as ready) and then runs
// init unless it already ran. If ctx ends first, init is not run and may
// still run on a later call.
func (b *Bootstrap) Run(ctx context.Context, ready <-chan struct{}, init func() error) error {
	if ready != nil {
		select {
		case <-ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b.once.Do(func() {
		b.err = init()
	})
	return b.err
}

// Ready returns an already-closed channel, for hosts that are ready as soon
// as they exist.
func Ready() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
