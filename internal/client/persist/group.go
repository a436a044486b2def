package persist

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group runs the workers of several queues together.
type Group struct {
	queues []*Queue
}

func NewGroup(queues ...*Queue) *Group {
	return &Group{queues: queues}
}

// Pending returns the names of the queues that still hold unwritten work.
func (g *Group) Pending() []string {
	var names []string
	for _, q := range g.queues {
		if q.Pending() {
			names = append(names, q.Name())
		}
	}
	return names
}

// Run starts one worker per queue and blocks until ctx is cancelled.
func (g *Group) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, q := range g.queues {
		eg.Go(func() error { return q.Run(ctx) })
	}
	return eg.Wait()
}

// Flush flushes every queue concurrently and waits for all of them.
func (g *Group) Flush(ctx context.Context) {
	var eg errgroup.Group
	for _, q := range g.queues {
		eg.Go(func() error {
			q.Flush(ctx)
			return nil
		})
	}
	_ = eg.Wait()
}
