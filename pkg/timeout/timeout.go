package timeout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lau0120/tiny-thread-pool/pkg/pool"
)

// DefaultPollInterval is how often pending tasks are considered for dispatch.
const DefaultPollInterval = time.Second

// ErrClosed indicates the dispatcher has been stopped.
var ErrClosed = errors.New("timeout dispatcher is closed")

// Task is a unit of work with a submission deadline. Whichever branch runs,
// its non-nil return value is published to the pool's result buffer.
type Task interface {
	// OnReady runs when the task is dispatched before its deadline.
	OnReady(ctx context.Context) pool.Result

	// OnExpire runs instead of OnReady when the deadline has passed
	// before a worker picked the task up.
	OnExpire(ctx context.Context) pool.Result
}

// Config holds configuration options for a Dispatcher.
type Config struct {
	// Pool is the execution pool. If nil, the dispatcher owns a pool
	// created from Workers and QueueSize.
	Pool pool.Pool

	// Workers and QueueSize configure the owned pool when Pool is nil.
	Workers   int
	QueueSize int

	// PollInterval is how often pending tasks are considered for
	// dispatch. Zero means DefaultPollInterval.
	PollInterval time.Duration
}

// entry is a pending task plus its deadline.
type entry struct {
	task     Task
	deadline time.Time
}

// Dispatcher holds deadline-bearing tasks in an unbounded pending list and
// feeds them to a pool opportunistically: on every poll tick it dispatches
// at most as many tasks as the pool reports idle workers. The idle count is
// a hint, so a dispatched task may still wait briefly in the pool queue.
type Dispatcher struct {
	exec     pool.Pool
	ownPool  bool
	interval time.Duration

	mu      sync.Mutex
	pending []entry
	closed  bool

	done   chan struct{}
	loopWg sync.WaitGroup
}

// New creates a Dispatcher and starts its polling loop.
func New(config Config) *Dispatcher {
	exec := config.Pool
	ownPool := false
	if exec == nil {
		exec = pool.New(config.Workers, config.QueueSize)
		ownPool = true
	}

	interval := config.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	d := &Dispatcher{
		exec:     exec,
		ownPool:  ownPool,
		interval: interval,
		done:     make(chan struct{}),
	}

	d.loopWg.Add(1)
	go d.poll()

	return d
}

// Submit queues a task that should be dispatched within ttl. The pending
// list is unbounded; backpressure applies only at the pool boundary.
func (d *Dispatcher) Submit(task Task, ttl time.Duration) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.pending = append(d.pending, entry{task: task, deadline: time.Now().Add(ttl)})
	return nil
}

// Drain returns everything the underlying pool has published so far.
func (d *Dispatcher) Drain() []pool.Result {
	return d.exec.Drain()
}

// Pending returns the number of tasks not yet handed to the pool.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Stop terminates the polling loop. Tasks still pending are discarded; if
// the dispatcher owns its pool, the pool is shut down as well.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.pending = nil
	d.mu.Unlock()

	close(d.done)
	d.loopWg.Wait()

	if d.ownPool {
		d.exec.Shutdown()
	}
}

// poll is the dispatch loop.
func (d *Dispatcher) poll() {
	defer d.loopWg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			d.dispatch()
		}
	}
}

// dispatch hands at most IdleWorkers() pending tasks to the pool, oldest
// first. Whether a task expired is decided when a worker finally runs it,
// not here, so a task that expires while queued still reports expiry.
func (d *Dispatcher) dispatch() {
	budget := d.exec.IdleWorkers()
	if budget == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for budget > 0 && len(d.pending) > 0 {
		e := d.pending[0]
		if err := d.exec.Submit(wrap(e)); err != nil {
			// Queue full or pool closed: retry on a later tick.
			return
		}
		d.pending = d.pending[1:]
		budget--
	}
}

// wrap converts an entry into a plain pool task that picks the ready or
// expired branch at execution time.
func wrap(e entry) pool.Task {
	return pool.TaskFunc(func(ctx context.Context) pool.Result {
		if time.Now().After(e.deadline) {
			return e.task.OnExpire(ctx)
		}
		return e.task.OnReady(ctx)
	})
}
