package timer

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Lau0120/tiny-thread-pool/pkg/common/validation"
	"github.com/Lau0120/tiny-thread-pool/pkg/pool"
)

// DefaultTickInterval is how often the scheduler checks for due tasks.
const DefaultTickInterval = 50 * time.Millisecond

// ErrStopped indicates the scheduler has been stopped.
var ErrStopped = errors.New("timer scheduler is stopped")

// Config holds scheduler configuration.
type Config struct {
	// Pool is the execution pool. If nil, the scheduler owns a pool
	// created from Workers and QueueSize.
	Pool pool.Pool

	// Workers and QueueSize configure the owned pool when Pool is nil.
	Workers   int
	QueueSize int

	// TickInterval is how often due tasks are checked.
	// Zero means DefaultTickInterval.
	TickInterval time.Duration
}

// entry is one scheduled task.
type entry struct {
	id           string
	task         pool.Task
	nextRun      time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	remaining    int // fires left; < 0 means unlimited
}

// Scheduler fires tasks into a pool on interval or cron schedules. A fire
// is a plain Submit: when the pool's queue is full the fire is skipped and
// the schedule advances, so a slow pool cannot build an unbounded backlog.
type Scheduler struct {
	pool         pool.Pool
	ownPool      bool
	tickInterval time.Duration
	cronParser   cron.Parser

	mu      sync.Mutex
	entries map[string]*entry
	stopped bool

	done   chan struct{}
	loopWg sync.WaitGroup
}

// New creates a scheduler with default configuration and starts its loop.
func New() *Scheduler {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(config Config) *Scheduler {
	p := config.Pool
	ownPool := false
	if p == nil {
		p = pool.New(config.Workers, config.QueueSize)
		ownPool = true
	}

	tickInterval := config.TickInterval
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}

	s := &Scheduler{
		pool:         p,
		ownPool:      ownPool,
		tickInterval: tickInterval,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		entries:      make(map[string]*entry),
		done:         make(chan struct{}),
	}

	s.loopWg.Add(1)
	go s.loop()

	return s
}

// ScheduleEvery fires task every interval, times times in total.
// times <= 0 means the task repeats until canceled.
func (s *Scheduler) ScheduleEvery(id string, task pool.Task, interval time.Duration, times int) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	if err := validation.PositiveDuration("timer", "interval", interval); err != nil {
		return err
	}
	if times <= 0 {
		times = -1
	}

	return s.add(&entry{
		id:        id,
		task:      task,
		nextRun:   time.Now().Add(interval),
		interval:  interval,
		remaining: times,
	})
}

// ScheduleCron fires task on a cron schedule. The expression uses the
// six-field form with a leading seconds field, e.g. "*/5 * * * * *".
func (s *Scheduler) ScheduleCron(id string, expr string, task pool.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}

	schedule, err := s.cronParser.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	return s.add(&entry{
		id:           id,
		task:         task,
		nextRun:      schedule.Next(time.Now()),
		cronSchedule: schedule,
		remaining:    -1,
	})
}

func (s *Scheduler) add(e *entry) error {
	if err := validation.NotEmpty("timer", "id", e.id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if _, exists := s.entries[e.id]; exists {
		return fmt.Errorf("task %q already scheduled", e.id)
	}

	s.entries[e.id] = e
	return nil
}

// Cancel removes a scheduled task, reporting whether it existed.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.entries[id]
	delete(s.entries, id)
	return existed
}

// CancelAll removes every scheduled task.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// List returns the IDs of all scheduled tasks.
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids
}

// Drain returns everything the underlying pool has published so far.
func (s *Scheduler) Drain() []pool.Result {
	return s.pool.Drain()
}

// Stop terminates the loop and, if the scheduler owns its pool, shuts the
// pool down. Already-submitted fires still run to completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.entries = make(map[string]*entry)
	s.mu.Unlock()

	close(s.done)
	s.loopWg.Wait()

	if s.ownPool {
		s.pool.Shutdown()
	}
}

func (s *Scheduler) loop() {
	defer s.loopWg.Done()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.fireDue(now)
		}
	}
}

// fireDue submits every due entry and advances its schedule.
func (s *Scheduler) fireDue(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if now.Before(e.nextRun) {
			continue
		}

		if err := s.pool.Submit(e.task); err != nil {
			// Skip this fire rather than queue a backlog.
			log.Printf("timer: task %q: fire skipped: %v", id, err)
		}

		if e.cronSchedule != nil {
			e.nextRun = e.cronSchedule.Next(now)
			continue
		}

		e.nextRun = now.Add(e.interval)
		if e.remaining > 0 {
			e.remaining--
			if e.remaining == 0 {
				delete(s.entries, id)
			}
		}
	}
}
