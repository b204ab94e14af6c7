package worker

import (
	"sync"

	"github.com/baharkarakas/point-ledger/internal/metrics"
)

type task func()

// Pool runs archive/audit jobs off the request path. Submit blocks
// once the queue is full rather than dropping work.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	if n <= 0 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Dec()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	metrics.WorkerQueueDepth.Inc()
	p.jobs <- f
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
