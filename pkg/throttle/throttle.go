package throttle

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/Lau0120/tiny-thread-pool/pkg/metrics"
	"github.com/Lau0120/tiny-thread-pool/pkg/pool"
)

// ErrThrottled indicates a submission was denied by the limiter.
var ErrThrottled = errors.New("submission throttled")

// Limiter gates task submissions.
type Limiter interface {
	// Allow reports whether one submission may proceed now. The error
	// is non-nil only for limiter-internal failures, not for denials.
	Allow(ctx context.Context) (bool, error)

	// Type identifies the limiter implementation, used as a metric label.
	Type() string
}

// localLimiter adapts an in-process token bucket to the Limiter interface.
type localLimiter struct {
	limiter *rate.Limiter
}

// NewLocal creates an in-process token-bucket limiter allowing rps
// submissions per second with the given burst capacity.
func NewLocal(rps float64, burst int) Limiter {
	return &localLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *localLimiter) Allow(ctx context.Context) (bool, error) {
	return l.limiter.Allow(), nil
}

func (l *localLimiter) Type() string { return "local" }

// Submitter couples a pool with a limiter so producers can throttle their
// own submission rate before hitting the pool's queue-full backpressure.
type Submitter struct {
	pool     pool.Pool
	limiter  Limiter
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewSubmitter creates a throttled submitter without metrics.
func NewSubmitter(p pool.Pool, l Limiter) *Submitter {
	return &Submitter{pool: p, limiter: l}
}

// NewSubmitterWithMetrics creates a throttled submitter with Prometheus
// instrumentation under the given limiter name.
func NewSubmitterWithMetrics(p pool.Pool, l Limiter, name string, metricsConfig metrics.Config) *Submitter {
	s := NewSubmitter(p, l)

	if !metricsConfig.Enabled {
		return s
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	s.name = name
	s.registry = registry
	s.enabled = true

	return s
}

// Submit asks the limiter for a slot and, if granted, submits the task.
// A denial returns ErrThrottled without touching the pool; the pool's own
// ErrQueueFull and ErrPoolClosed pass through unchanged.
func (s *Submitter) Submit(ctx context.Context, task pool.Task) error {
	if s.enabled {
		s.registry.ThrottleRequests.WithLabelValues(s.limiter.Type(), s.name).Inc()
	}

	ok, err := s.limiter.Allow(ctx)
	if err != nil {
		return fmt.Errorf("limiter: %w", err)
	}
	if !ok {
		if s.enabled {
			s.registry.ThrottleDenied.WithLabelValues(s.limiter.Type(), s.name).Inc()
		}
		return ErrThrottled
	}

	if s.enabled {
		s.registry.ThrottleAllowed.WithLabelValues(s.limiter.Type(), s.name).Inc()
	}

	return s.pool.Submit(task)
}
