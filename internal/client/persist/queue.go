package persist

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursemanager/internal/logging"
)

const DefaultTimeout = 5 * time.Second

// Job writes one snapshot.
type Job func(ctx context.Context) error

// AlertFunc receives job failures in addition to the log.
type AlertFunc func(queue string, err error)

type Option func(*Queue)

// WithAlert sets the failure callback. It is called from the goroutine that
// ran the job.
func WithAlert(fn AlertFunc) Option {
	return func(q *Queue) { q.alert = fn }
}

// WithTimeout bounds a single job. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// Queue is a coalescing single-writer queue.
type Queue struct {
	name    string
	logger  logging.Logger
	timeout time.Duration
	alert   AlertFunc

	mu      sync.Mutex
	idle    *sync.Cond
	pending Job
	busy    bool
	wake    chan struct{}
}

func New(name string, logger logging.Logger, opts ...Option) *Queue {
	q := &Queue{
		name:    name,
		logger:  logger.With("queue", name),
		timeout: DefaultTimeout,
		wake:    make(chan struct{}, 1),
	}
	q.idle = sync.NewCond(&q.mu)
	for _, o := range opts {
		o(q)
	}
	return q
}

func (q *Queue) Name() string { return q.name }

// Submit records job as the newest snapshot and wakes the worker. It never
// blocks on I/O.
func (q *Queue) Submit(job Job) {
	q.mu.Lock()
	q.pending = job
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether a job is waiting or running.
func (q *Queue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending != nil || q.busy
}

// Run is the worker loop. It returns nil when ctx is cancelled; call Flush
// afterwards to write whatever is still pending.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-q.wake:
			q.drain(ctx, false)
		}
	}
}

// Flush runs any pending job on the calling goroutine, or waits for the
// running one, until the queue is idle.
func (q *Queue) Flush(ctx context.Context) {
	q.drain(ctx, true)
}

func (q *Queue) drain(ctx context.Context, wait bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.busy {
			if !wait {
				// whoever is running will pick up the pending job
				return
			}
			q.idle.Wait()
			continue
		}

		job := q.pending
		if job == nil {
			return
		}
		q.pending = nil
		q.busy = true
		q.mu.Unlock()

		q.run(ctx, job)

		q.mu.Lock()
		q.busy = false
		q.idle.Broadcast()
	}
}

func (q *Queue) run(ctx context.Context, job Job) {
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.timeout)
	defer cancel()

	start := time.Now()
	if err := job(jctx); err != nil {
		q.logger.Error(ctx, "background save failed", "error", err)
		if q.alert != nil {
			q.alert(q.name, err)
		}
		return
	}
	q.logger.Debug(ctx, "background save done", "took", time.Since(start))
}
