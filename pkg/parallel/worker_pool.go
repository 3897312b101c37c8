// Package parallel runs independent mining jobs on a fixed set of goroutines.
package parallel

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-sif/pkg/logging"
)

// WorkerPool runs submitted tasks on a fixed number of goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // guards closed against a send racing Close
	closed    bool
	panics    atomic.Int64
	logger    logging.Logger
}

// ErrTooManyWorkers is returned when the worker count exceeds MaxWorkers.
var ErrTooManyWorkers = fmt.Errorf("worker count exceeds maximum")

// MaxWorkers is the largest pool size whose queue size cannot overflow.
const MaxWorkers = math.MaxInt / 2

// DefaultWorkers is the pool size used when zero or fewer workers are requested.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// NewWorkerPool starts workers goroutines. A nil logger discards panic reports.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
		logger:    logger.With(logging.Component("worker_pool")),
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool, nil
}

// Workers returns the number of goroutines of the pool
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Panics returns how many tasks panicked so far
func (wp *WorkerPool) Panics() int64 {
	return wp.panics.Load()
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.run(task)
	}
}

// run executes one task. A panicking task is counted and logged; the worker
// keeps going.
func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panics.Add(1)
			wp.logger.Error("task panicked", logging.Any("panic", fmt.Sprint(r)))
		}
	}()
	task()
}

// Submit queues a task. It blocks while the queue is full and returns false
// once the pool is closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close shuts down the worker pool. It waits for the queued tasks to finish
// and is safe to call more than once and from several goroutines.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait waits for all submitted tasks to complete
func (wp *WorkerPool) Wait() {
	// Close the queue and wait for workers to finish
	wp.Close()
}
