// Package throttle provides producer-side submission throttling for pools.
//
// A pool rejects work once its queue is full; throttling lets producers
// smooth their submission rate before that happens. The package offers two
// limiters behind one interface:
//
//   - NewLocal: an in-process token bucket, for single-instance producers.
//   - NewRedisFixedWindow: a Redis-coordinated fixed window, for fleets of
//     producers sharing one submission budget.
//
// A Submitter ties a limiter to a pool:
//
//	p := pool.New(4, 1024)
//	s := throttle.NewSubmitter(p, throttle.NewLocal(100, 10))
//
//	err := s.Submit(ctx, task)
//	if errors.Is(err, throttle.ErrThrottled) {
//		// denied by the limiter; back off and retry
//	}
//
// Denials surface as ErrThrottled. Pool-level rejections (ErrQueueFull,
// ErrPoolClosed) pass through unchanged, so callers can tell "slow down"
// apart from "the pool is saturated or gone".
//
// The Redis limiter runs a single Lua script per decision, keeping the
// check-and-increment atomic across instances. When Redis is unreachable
// it either consults a configured local Fallback or fails closed.
package throttle
