// Package benchmark provides cross-component performance benchmarks.
package benchmark

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Lau0120/tiny-thread-pool/pkg/pool"
)

// noopTask completes instantly without publishing a result.
var noopTask = pool.TaskFunc(func(_ context.Context) pool.Result {
	return nil
})

// BenchmarkPoolVsGoroutines compares pooled execution against spawning a
// goroutine per task, the baseline a pool has to beat for small tasks.
func BenchmarkPoolVsGoroutines(b *testing.B) {
	b.Run("Pool", func(b *testing.B) {
		p := pool.New(4, 1000)
		defer p.Shutdown()

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for p.Submit(noopTask) != nil {
				// Queue full: the workers are behind, let them catch up.
				time.Sleep(time.Microsecond)
			}
		}
	})

	b.Run("Goroutines", func(b *testing.B) {
		var wg sync.WaitGroup

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				noopTask.Execute(context.Background())
			}()
		}
		wg.Wait()
	})
}

// BenchmarkPoolThroughput measures submit-to-drain round trips with
// result-publishing tasks.
func BenchmarkPoolThroughput(b *testing.B) {
	p := pool.New(4, 1000)
	defer p.Shutdown()

	task := pool.TaskFunc(func(_ context.Context) pool.Result {
		return 1
	})

	b.ReportAllocs()
	b.ResetTimer()

	drained := 0
	for i := 0; i < b.N; i++ {
		for p.Submit(task) != nil {
			drained += len(p.Drain())
		}
	}
	for drained < b.N {
		drained += len(p.Drain())
	}
}

// BenchmarkPoolContention measures submission under parallel producers.
func BenchmarkPoolContention(b *testing.B) {
	for _, producers := range []int{2, 8, 32} {
		b.Run(fmt.Sprintf("%dproducers", producers), func(b *testing.B) {
			p := pool.New(8, 10000)
			defer p.Shutdown()

			b.ReportAllocs()
			b.SetParallelism(producers)
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					for p.Submit(noopTask) != nil {
						time.Sleep(time.Microsecond)
					}
				}
			})
		})
	}
}

// BenchmarkPoolLifecycle measures a full create, submit, shutdown cycle.
func BenchmarkPoolLifecycle(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := pool.New(4, 100)
		for j := 0; j < 10; j++ {
			_ = p.Submit(noopTask)
		}
		p.Shutdown()
	}
}

// BenchmarkInstrumentedOverhead compares a plain pool against one wrapped
// with Prometheus metrics.
func BenchmarkInstrumentedOverhead(b *testing.B) {
	b.Run("Plain", func(b *testing.B) {
		p := pool.New(4, 10000)
		defer p.Shutdown()

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for p.Submit(noopTask) != nil {
				time.Sleep(time.Microsecond)
			}
		}
	})

	b.Run("Instrumented", func(b *testing.B) {
		p := pool.NewWithMetrics(4, 10000, "bench_pool")
		defer p.Shutdown()

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for p.Submit(noopTask) != nil {
				time.Sleep(time.Microsecond)
			}
		}
	})
}
