package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Lau0120/tiny-thread-pool/pkg/common/validation"
)

// DefaultMaxQueueSize is the task queue capacity used when none is given.
const DefaultMaxQueueSize = 65535

var (
	// ErrQueueFull indicates the bounded task queue is at capacity.
	// The caller decides whether to retry, drop, or apply backpressure upstream.
	ErrQueueFull = errors.New("task queue is full")

	// ErrPoolClosed indicates the pool has been shut down.
	ErrPoolClosed = errors.New("pool is closed")
)

// Result is an opaque value produced by a task's execution. The pool never
// inspects it; callers correlate results back to tasks using whatever the
// task chooses to embed (an identifier, the input, etc.).
type Result = any

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute performs the work and returns a value to publish into the
	// pool's result buffer. Returning nil means there is nothing to
	// publish, which is valid for tasks that only perform side effects.
	Execute(ctx context.Context) Result
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) Result

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) Result {
	return f(ctx)
}

// Pool represents a fixed-size worker pool with a bounded task queue and a
// drainable result buffer.
type Pool interface {
	// Submit adds a task to the bounded queue without blocking.
	// It returns ErrQueueFull when the queue is at capacity and
	// ErrPoolClosed once Shutdown has begun.
	Submit(task Task) error

	// Drain atomically empties the result buffer and returns everything
	// published since the last call, in publication order. Draining an
	// empty buffer returns an empty slice, not an error.
	Drain() []Result

	// IdleWorkers returns the number of workers currently waiting for
	// work. The count is advisory: it can be stale the instant it is
	// read, since workers change state concurrently.
	IdleWorkers() int

	// QueueSize returns the current number of queued tasks.
	QueueSize() int

	// PendingResults returns the number of results awaiting a Drain.
	PendingResults() int

	// Size returns the number of workers in the pool.
	Size() int

	// MaxQueueSize returns the task queue capacity.
	MaxQueueSize() int

	// Shutdown stops the pool, blocking until every worker has
	// acknowledged termination. Tasks accepted before Shutdown are
	// executed first; a running task is never interrupted. Submissions
	// after Shutdown fail with ErrPoolClosed.
	Shutdown()
}

// Config holds configuration options for creating a pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Zero means one worker per logical CPU.
	WorkerCount int

	// QueueSize is the maximum number of tasks that can be queued.
	// Zero means DefaultMaxQueueSize.
	QueueSize int

	// PanicHandler is called when a task panics during execution.
	// If nil, the panic is logged with a stack trace. Either way the
	// worker survives and continues its cycle.
	PanicHandler func(task Task, recovered any)

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker acknowledges shutdown.
	OnWorkerStop func(workerID int)
}

// workItem is what the queue actually carries: either a task to run or a
// stop signal that terminates exactly one worker. The explicit tag avoids
// any reliance on sentinel value identity.
type workItem struct {
	task Task
	stop bool
}

// threadPool implements the Pool interface. The queue, the result buffer,
// and the idle map are three independent synchronization domains; no code
// path holds more than one of them at a time.
type threadPool struct {
	config Config

	// Bounded FIFO task queue. The channel is both the capacity bound
	// and the workers' suspension point.
	queue chan workItem

	// Result buffer.
	resultsMu sync.Mutex
	results   []Result

	// Idle tracker, keyed by worker ID. Observational only.
	idleMu sync.RWMutex
	idle   map[int]bool

	// Count of workers that have acknowledged a stop signal.
	stopAcks atomic.Int32

	mu           sync.RWMutex
	closed       bool
	shutdownOnce sync.Once
	workerWg     sync.WaitGroup
}

// New creates a pool with the specified worker count and queue capacity
// and starts all workers immediately.
func New(workerCount, queueSize int) Pool {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewSafe is like New but returns an error instead of panicking on
// invalid configuration.
func NewSafe(workerCount, queueSize int) (Pool, error) {
	return NewWithConfigSafe(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewWithConfig creates a pool with the specified configuration. It panics
// on invalid configuration; use NewWithConfigSafe to get an error instead.
func NewWithConfig(config Config) Pool {
	p, err := NewWithConfigSafe(config)
	if err != nil {
		panic(err)
	}
	return p
}

// NewWithConfigSafe creates a pool with the specified configuration,
// returning an error when the configuration is invalid.
func NewWithConfigSafe(config Config) (Pool, error) {
	if err := validation.NonNegative("pool", "WorkerCount", config.WorkerCount); err != nil {
		return nil, err
	}
	if err := validation.NonNegative("pool", "QueueSize", config.QueueSize); err != nil {
		return nil, err
	}

	if config.WorkerCount == 0 {
		config.WorkerCount = runtime.NumCPU()
	}
	if config.QueueSize == 0 {
		config.QueueSize = DefaultMaxQueueSize
	}

	p := &threadPool{
		config: config,
		queue:  make(chan workItem, config.QueueSize),
		idle:   make(map[int]bool, config.WorkerCount),
	}

	for i := 0; i < config.WorkerCount; i++ {
		p.idle[i] = true
		p.workerWg.Add(1)
		go p.run(i)
	}

	return p, nil
}

// Submit adds a task to the bounded queue without blocking.
func (p *threadPool) Submit(task Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}

	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return ErrPoolClosed
	}

	select {
	case p.queue <- workItem{task: task}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain atomically empties the result buffer and returns its contents.
func (p *threadPool) Drain() []Result {
	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()
	out := p.results
	p.results = nil
	return out
}

// IdleWorkers returns the number of workers currently waiting for work.
func (p *threadPool) IdleWorkers() int {
	p.idleMu.RLock()
	defer p.idleMu.RUnlock()
	n := 0
	for _, idle := range p.idle {
		if idle {
			n++
		}
	}
	return n
}

// QueueSize returns the current number of queued tasks.
func (p *threadPool) QueueSize() int {
	return len(p.queue)
}

// PendingResults returns the number of results awaiting a Drain.
func (p *threadPool) PendingResults() int {
	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()
	return len(p.results)
}

// Size returns the number of workers in the pool.
func (p *threadPool) Size() int {
	return p.config.WorkerCount
}

// MaxQueueSize returns the task queue capacity.
func (p *threadPool) MaxQueueSize() int {
	return cap(p.queue)
}

// Shutdown stops the pool, one worker at a time. It enqueues exactly one
// stop item per worker through the same bounded queue as ordinary tasks,
// so every task accepted before Shutdown runs before its worker stops.
// The call returns only after all workers have acknowledged termination;
// concurrent callers block until the first call completes.
func (p *threadPool) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		// Blocking sends: delivery of every stop item is guaranteed
		// even while the queue is full of pending work.
		for i := 0; i < p.config.WorkerCount; i++ {
			p.queue <- workItem{stop: true}
		}

		p.workerWg.Wait()
	})
}
