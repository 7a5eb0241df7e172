package testutil

import (
	"context"
	"sync/atomic"
	"time"
)

// CountingTask is a task double shared by the wrapper-package tests. It
// counts executions, optionally sleeps, and returns a configurable output.
type CountingTask struct {
	ID       int
	Sleep    time.Duration
	Output   any // nil means "nothing to publish"
	executed atomic.Int32
}

// Execute sleeps for the configured duration and returns the configured output.
func (c *CountingTask) Execute(ctx context.Context) any {
	c.executed.Add(1)

	if c.Sleep > 0 {
		select {
		case <-time.After(c.Sleep):
		case <-ctx.Done():
		}
	}

	return c.Output
}

// Executed returns how many times the task has run.
func (c *CountingTask) Executed() int {
	return int(c.executed.Load())
}
