// Package parallel runs independent jobs on a bounded set of goroutines.
// Jobs never share state through the pool: each one owns whatever it
// builds, which is how independent constraint stores are solved side by
// side.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when submitting to a pool that was shut down.
var ErrPoolShutdown = errors.New("parallel: worker pool has been shut down")

// WorkerPool is a fixed set of goroutines draining a bounded task channel.
type WorkerPool struct {
	workers      int
	tasks        chan func()
	wg           sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool starts a pool. A non-positive size means one worker per CPU.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &WorkerPool{
		workers:      workers,
		tasks:        make(chan func(), workers*2),
		shutdownChan: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int { return p.workers }

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task()
		case <-p.shutdownChan:
			return
		}
	}
}

// Submit queues task, blocking while the channel is full.
func (p *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-p.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops the workers after the running tasks return. Queued tasks
// that no worker picked up are dropped.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		p.wg.Wait()
	})
}

// Map calls job(ctx, i) for every i in [0, n) on a pool of the given size
// and returns the results in index order. The first error cancels the
// context handed to the jobs that have not finished; Map still waits for
// every submitted job before returning it.
func Map[T any](ctx context.Context, workers, n int, job func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}
	if workers <= 0 || workers > n {
		workers = min(n, runtime.NumCPU())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(workers)
	defer pool.Shutdown()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			r, err := job(ctx, i)
			if err != nil {
				record(err)
				return
			}
			results[i] = r
		})
		if err != nil {
			wg.Done()
			record(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return results, firstErr
	}
	return results, nil
}
