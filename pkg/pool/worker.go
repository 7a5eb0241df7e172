package pool

import (
	"context"
	"log"
	"runtime/debug"
)

// run is the worker cycle: wait for a work item, mark busy, execute,
// publish any non-nil result, mark idle, repeat. A stop item ends the
// loop permanently.
func (p *threadPool) run(id int) {
	defer p.workerWg.Done()

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(id)
	}

	for {
		item := <-p.queue
		if item.stop {
			p.stopAcks.Add(1)
			p.dropWorker(id)
			if p.config.OnWorkerStop != nil {
				p.config.OnWorkerStop(id)
			}
			return
		}

		p.markBusy(id)
		if out := p.execute(id, item.task); out != nil {
			p.publish(out)
		}
		p.markIdle(id)
	}
}

// execute invokes the task, isolating panics so a faulting task cannot
// take its worker down. The call is otherwise opaque to the pool: it may
// block or sleep arbitrarily long, and the pool imposes no timeout.
func (p *threadPool) execute(id int, task Task) (out Result) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			if p.config.PanicHandler != nil {
				p.config.PanicHandler(task, r)
				return
			}
			log.Printf("pool: worker %d: task panicked: %v\n%s", id, r, debug.Stack())
		}
	}()

	return task.Execute(context.Background())
}

// publish appends a result to the buffer.
func (p *threadPool) publish(r Result) {
	p.resultsMu.Lock()
	p.results = append(p.results, r)
	p.resultsMu.Unlock()
}

func (p *threadPool) markBusy(id int) {
	p.idleMu.Lock()
	p.idle[id] = false
	p.idleMu.Unlock()
}

func (p *threadPool) markIdle(id int) {
	p.idleMu.Lock()
	p.idle[id] = true
	p.idleMu.Unlock()
}

// dropWorker removes a stopped worker from the idle map so IdleWorkers
// reflects live workers only.
func (p *threadPool) dropWorker(id int) {
	p.idleMu.Lock()
	delete(p.idle, id)
	p.idleMu.Unlock()
}
