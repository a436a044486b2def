package persist

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursemanager/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recLogger) Debug(context.Context, string, ...any) {}
func (l *recLogger) Info(context.Context, string, ...any)  {}
func (l *recLogger) Warn(context.Context, string, ...any)  {}
func (l *recLogger) Error(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
func (l *recLogger) With(...any) logging.Logger { return l }

func (l *recLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func TestFlush_WithoutWorker_RunsOnlyNewest(t *testing.T) {
	q := New("users", logging.Discard())

	var ran []int
	for i := 1; i <= 3; i++ {
		q.Submit(func(context.Context) error {
			ran = append(ran, i)
			return nil
		})
	}
	assert.True(t, q.Pending())

	q.Flush(context.Background())

	assert.Equal(t, []int{3}, ran)
	assert.False(t, q.Pending())
}

func TestFlush_EmptyQueue_ReturnsImmediately(t *testing.T) {
	q := New("users", logging.Discard())
	q.Flush(context.Background())
	assert.False(t, q.Pending())
}

func TestRun_LastSubmittedIsLastWritten(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := New("courses", logging.Discard())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx)
	}()

	var (
		mu       sync.Mutex
		written  int
		active   atomic.Int32
		overlaps atomic.Int32
	)
	for i := 1; i <= 200; i++ {
		q.Submit(func(context.Context) error {
			if active.Add(1) > 1 {
				overlaps.Add(1)
			}
			defer active.Add(-1)
			time.Sleep(50 * time.Microsecond)
			mu.Lock()
			written = i
			mu.Unlock()
			return nil
		})
	}

	q.Flush(ctx)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 200, written)
	assert.Zero(t, overlaps.Load(), "jobs must never run concurrently")
}

func TestFlush_WaitsForRunningJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := New("users", logging.Discard())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx)
	}()

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	q.Submit(func(context.Context) error {
		close(started)
		<-release
		finished.Store(true)
		return nil
	})
	<-started

	flushed := make(chan struct{})
	go func() {
		q.Flush(ctx)
		close(flushed)
	}()

	select {
	case <-flushed:
		t.Fatal("Flush returned while a job was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-flushed
	assert.True(t, finished.Load())

	cancel()
	<-done
}

func TestRun_FailureIsLoggedAndAlerted(t *testing.T) {
	log := &recLogger{}
	boom := errors.New("disk full")

	var (
		mu     sync.Mutex
		alerts []string
	)
	q := New("users", log, WithAlert(func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.ErrorIs(t, err, boom)
		alerts = append(alerts, name)
	}))

	q.Submit(func(context.Context) error { return boom })
	q.Flush(context.Background())

	assert.Equal(t, 1, log.count())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"users"}, alerts)
}

func TestJobContext_HasTimeoutAndOutlivesParent(t *testing.T) {
	q := New("users", logging.Discard(), WithTimeout(time.Minute))

	parent, cancel := context.WithCancel(context.Background())
	cancel()

	var (
		deadline time.Time
		hasDL    bool
		jobErr   error
	)
	q.Submit(func(ctx context.Context) error {
		deadline, hasDL = ctx.Deadline()
		jobErr = ctx.Err()
		return nil
	})
	q.Flush(parent)

	require.True(t, hasDL)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	assert.NoError(t, jobErr, "cancelled parent must not cancel the final write")
}

func TestJobContext_TimeoutExpires(t *testing.T) {
	log := &recLogger{}
	q := New("courses", log, WithTimeout(10*time.Millisecond))

	q.Submit(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	q.Flush(context.Background())

	assert.Equal(t, 1, log.count())
}

func TestWithTimeout_IgnoresNonPositive(t *testing.T) {
	q := New("x", logging.Discard(), WithTimeout(0))
	assert.Equal(t, DefaultTimeout, q.timeout)
	assert.Equal(t, "x", q.Name())
}
