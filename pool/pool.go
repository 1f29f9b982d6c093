package pool

import (
	"context"
	"sync"
)

// Pool bounds the number of files being processed at once.
type Pool struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

func New(maxWorkers int) *Pool {
	return &Pool{
		sem: make(chan struct{}, maxWorkers),
	}
}

// Submit runs job on its own goroutine once a worker slot frees up. Jobs
// still waiting for a slot when ctx is cancelled are dropped.
func (p *Pool) Submit(ctx context.Context, job func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
			job()
		case <-ctx.Done():
		}
	}()
}

func (p *Pool) Wait() {
	p.wg.Wait()
}
