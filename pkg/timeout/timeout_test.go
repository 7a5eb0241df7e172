package timeout

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lau0120/tiny-thread-pool/internal/testutil"
	"github.com/Lau0120/tiny-thread-pool/pkg/pool"
)

// branchTask records which branch ran.
type branchTask struct {
	id      int
	ready   atomic.Int32
	expired atomic.Int32
}

func (b *branchTask) OnReady(ctx context.Context) pool.Result {
	b.ready.Add(1)
	return fmt.Sprintf("ready:%d", b.id)
}

func (b *branchTask) OnExpire(ctx context.Context) pool.Result {
	b.expired.Add(1)
	return fmt.Sprintf("expired:%d", b.id)
}

// gatedTask occupies a pool worker until released.
type gatedTask struct {
	release chan struct{}
}

func (g *gatedTask) Execute(ctx context.Context) pool.Result {
	<-g.release
	return nil
}

func TestDispatchBeforeDeadline(t *testing.T) {
	d := New(Config{Workers: 2, QueueSize: 4, PollInterval: 5 * time.Millisecond})
	defer d.Stop()

	task := &branchTask{id: 1}
	testutil.AssertNoError(t, d.Submit(task, time.Hour))

	testutil.Eventually(t, time.Second, func() bool {
		return task.ready.Load() == 1
	})
	testutil.AssertEqual(t, task.expired.Load(), int32(0))

	testutil.Eventually(t, time.Second, func() bool {
		results := d.Drain()
		return len(results) == 1 && results[0].(string) == "ready:1"
	})
}

func TestExpiredTaskRunsExpireBranch(t *testing.T) {
	d := New(Config{Workers: 1, QueueSize: 4, PollInterval: 5 * time.Millisecond})
	defer d.Stop()

	task := &branchTask{id: 2}
	testutil.AssertNoError(t, d.Submit(task, -time.Millisecond))

	testutil.Eventually(t, time.Second, func() bool {
		return task.expired.Load() == 1
	})
	testutil.AssertEqual(t, task.ready.Load(), int32(0))
}

func TestDispatchWaitsForIdleWorkers(t *testing.T) {
	p := pool.New(1, 2)
	defer p.Shutdown()

	d := New(Config{Pool: p, PollInterval: 5 * time.Millisecond})
	defer d.Stop()

	// Occupy the only worker directly.
	release := make(chan struct{})
	testutil.AssertNoError(t, p.Submit(&gatedTask{release: release}))
	testutil.Eventually(t, time.Second, func() bool {
		return p.IdleWorkers() == 0
	})

	task := &branchTask{id: 3}
	testutil.AssertNoError(t, d.Submit(task, time.Hour))

	// No idle workers: the task stays pending across several ticks.
	time.Sleep(30 * time.Millisecond)
	testutil.AssertEqual(t, d.Pending(), 1)

	close(release)
	testutil.Eventually(t, time.Second, func() bool {
		return task.ready.Load() == 1
	})
	testutil.AssertEqual(t, d.Pending(), 0)
}

func TestSubmitAfterStop(t *testing.T) {
	d := New(Config{Workers: 1, QueueSize: 2, PollInterval: 5 * time.Millisecond})
	d.Stop()

	err := d.Submit(&branchTask{id: 4}, time.Second)
	testutil.AssertEqual(t, err, ErrClosed)
}

func TestStopDiscardsPending(t *testing.T) {
	p := pool.New(1, 2)
	defer p.Shutdown()

	// Worker held busy so nothing gets dispatched.
	release := make(chan struct{})
	defer close(release)
	testutil.AssertNoError(t, p.Submit(&gatedTask{release: release}))

	d := New(Config{Pool: p, PollInterval: 5 * time.Millisecond})

	task := &branchTask{id: 5}
	testutil.AssertNoError(t, d.Submit(task, time.Hour))
	d.Stop()

	testutil.AssertEqual(t, d.Pending(), 0)
	testutil.AssertEqual(t, task.ready.Load(), int32(0))
	testutil.AssertEqual(t, task.expired.Load(), int32(0))
}

func TestStopIdempotent(t *testing.T) {
	d := New(Config{Workers: 1, QueueSize: 2, PollInterval: 5 * time.Millisecond})
	d.Stop()
	d.Stop()
}
