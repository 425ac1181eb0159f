package pool

import (
	"sync"

	"github.com/alpacahq/bizday/utils/log"
)

// Pool runs indexed jobs on a bounded number of goroutines and keeps the
// error of the lowest-indexed failing job, so a partitioned evaluation
// reports the same error a sequential one would.
type Pool struct {
	workerQ chan struct{}
	f       func(index int) error
	wg      sync.WaitGroup

	mu       sync.Mutex
	errIndex int
	err      error
}

// NewPool creates a new worker pool with a goroutine limit
// and a job function to execute on each incoming index.
func NewPool(routines int, job func(index int) error) *Pool {
	if routines < 1 {
		routines = 1
	}
	q := make(chan struct{}, routines)
	for i := 0; i < routines; i++ {
		q <- struct{}{}
	}
	return &Pool{
		workerQ:  q,
		f:        job,
		errIndex: -1,
	}
}

// Work is a blocking call that starts the pool
// working on an input channel of job indexes.
func (p *Pool) Work(c <-chan int) {
	for index := range c {
		<-p.workerQ
		p.wg.Add(1)
		go func(index int) {
			defer p.wg.Done()
			if err := p.f(index); err != nil {
				p.record(index, err)
			}
			p.workerQ <- struct{}{}
		}(index)
	}
}

func (p *Pool) record(index int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.errIndex < 0 || index < p.errIndex {
		p.errIndex, p.err = index, err
	}
}

// Wait waits until the pool is finished and returns the error of the
// lowest-indexed failed job, if any.
func (p *Pool) Wait() error {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		log.Debug("pool finished with failed job %d: %v", p.errIndex, p.err)
	}
	return p.err
}

// Run executes job for every index in [0, n) on at most routines
// goroutines and waits for all of them.
func Run(n, routines int, job func(index int) error) error {
	p := NewPool(routines, job)
	c := make(chan int)
	go func() {
		defer close(c)
		for i := 0; i < n; i++ {
			c <- i
		}
	}()
	p.Work(c)
	return p.Wait()
}
