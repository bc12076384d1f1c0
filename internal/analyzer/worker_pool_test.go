package analyzer

import (
	"sync"
	"testing"
)

func TestNewWorkerPool(t *testing.T) {
	pool := NewWorkerPool(4)
	if pool == nil {
		t.Fatal("Expected non-nil worker pool")
	}
}

func TestNewWorkerPool_ZeroWorkers(t *testing.T) {
	// Zero defaults to one worker per CPU
	pool := NewWorkerPool(0)
	if pool == nil {
		t.Fatal("Expected non-nil worker pool")
	}
	if pool.workers <= 0 {
		t.Errorf("Expected a positive worker count, got %d", pool.workers)
	}
}

func TestWorkerPool_RunAll(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Close()

	var counter int
	var mu sync.Mutex

	jobs := make([]func(), 5)
	for i := range jobs {
		jobs[i] = func() {
			mu.Lock()
			counter++
			mu.Unlock()
		}
	}

	pool.RunAll(jobs...)

	if counter != 5 {
		t.Errorf("Expected counter to be 5, got %d", counter)
	}
}

func TestWorkerPool_RunAll_BlocksUntilDone(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Close()

	var results []int
	var mu sync.Mutex

	jobs := make([]func(), 10)
	for i := range jobs {
		value := i
		jobs[i] = func() {
			mu.Lock()
			results = append(results, value*2)
			mu.Unlock()
		}
	}

	pool.RunAll(jobs...)

	// RunAll returned, so every job must have finished
	if len(results) != 10 {
		t.Errorf("Expected 10 results, got %d", len(results))
	}
}

func TestWorkerPool_RunAll_Repeated(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Close()

	var counter int
	var mu sync.Mutex
	job := func() {
		mu.Lock()
		counter++
		mu.Unlock()
	}

	for i := 0; i < 4; i++ {
		pool.RunAll(job, job)
	}

	if counter != 8 {
		t.Errorf("Expected counter to be 8, got %d", counter)
	}
}

func TestWorkerPool_StartOnce(t *testing.T) {
	pool := NewWorkerPool(2)

	pool.Start()
	pool.Start() // idempotent
	defer pool.Close()

	var executed bool
	pool.RunAll(func() { executed = true })

	if !executed {
		t.Error("Expected job to be executed")
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()

	var executed bool
	pool.RunAll(func() { executed = true })

	pool.Close()
	pool.Close() // must not panic

	if !executed {
		t.Error("Expected job to be executed before close")
	}
}
