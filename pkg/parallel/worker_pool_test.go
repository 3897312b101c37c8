package parallel

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dd0wney/cluso-sif/pkg/logging"
)

func newPool(t testing.TB, workers int) *WorkerPool {
	t.Helper()
	pool, err := NewWorkerPool(workers, nil)
	if err != nil {
		t.Fatalf("NewWorkerPool(%d) error = %v", workers, err)
	}
	return pool
}

func TestNewWorkerPoolSize(t *testing.T) {
	pool := newPool(t, 0)
	defer pool.Close()
	if pool.Workers() != DefaultWorkers() {
		t.Errorf("Workers() = %d, want %d", pool.Workers(), DefaultWorkers())
	}

	if _, err := NewWorkerPool(MaxWorkers+1, nil); !errors.Is(err, ErrTooManyWorkers) {
		t.Errorf("NewWorkerPool(MaxWorkers+1) error = %v, want ErrTooManyWorkers", err)
	}
}

func TestWorkerPoolRunsEveryTask(t *testing.T) {
	pool := newPool(t, 5)

	const tasks = 50
	executed := make([]bool, tasks)
	var mu sync.Mutex
	for i := 0; i < tasks; i++ {
		if !pool.Submit(func() {
			mu.Lock()
			executed[i] = true
			mu.Unlock()
		}) {
			t.Fatalf("Submit(%d) refused on an open pool", i)
		}
	}
	pool.Close()

	for i, ok := range executed {
		if !ok {
			t.Errorf("task %d was not executed", i)
		}
	}
}

func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool := newPool(t, 10)

	var counter atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Submit(func() { counter.Add(1) })
		}()
	}
	wg.Wait()
	pool.Close()

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := newPool(t, 2)
	pool.Close()

	if pool.Submit(func() { t.Error("task ran after Close") }) {
		t.Error("Submit() after Close should return false")
	}
}

func TestWorkerPoolCloseRace(t *testing.T) {
	for iteration := 0; iteration < 50; iteration++ {
		pool := newPool(t, 4)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					pool.Submit(func() { time.Sleep(time.Millisecond) })
				}
			}()
		}

		time.Sleep(2 * time.Millisecond)
		var closers sync.WaitGroup
		for i := 0; i < 3; i++ {
			closers.Add(1)
			go func() {
				defer closers.Done()
				pool.Close()
			}()
		}
		closers.Wait()
		wg.Wait()
	}
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	pool, err := NewWorkerPool(2, logging.NewJSONLogger(&buf, logging.InfoLevel))
	if err != nil {
		t.Fatal(err)
	}

	var counter atomic.Int64
	for i := 0; i < 3; i++ {
		pool.Submit(func() { panic("broken variant") })
	}
	for i := 0; i < 10; i++ {
		pool.Submit(func() { counter.Add(1) })
	}
	pool.Wait()

	if counter.Load() != 10 {
		t.Errorf("counter = %d, want 10", counter.Load())
	}
	if pool.Panics() != 3 {
		t.Errorf("Panics() = %d, want 3", pool.Panics())
	}
	if got := strings.Count(buf.String(), "broken variant"); got != 3 {
		t.Errorf("logged %d panics, want 3:\n%s", got, buf.String())
	}
}

func BenchmarkWorkerPoolThroughput(b *testing.B) {
	pool := newPool(b, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Submit(func() {})
	}
	pool.Close()
}
