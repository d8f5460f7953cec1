package pool

import (
	"sync/atomic"
	"testing"
)

func TestDo(t *testing.T) {
	p := New(4)

	var counter int64
	n := 1000
	p.Do(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestDo_CoversRangeExactlyOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		for _, n := range []int{0, 1, 2, 7, 64, 101} {
			p := New(workers)
			seen := make([]int32, n)
			p.Do(n, func(i int) {
				atomic.AddInt32(&seen[i], 1)
			})
			for i, count := range seen {
				if count != 1 {
					t.Errorf("workers=%d n=%d: index %d visited %d times", workers, n, i, count)
				}
			}
		}
	}
}

func TestDo_NilPoolRunsSequentially(t *testing.T) {
	var p *Pool

	order := make([]int, 0, 10)
	p.Do(10, func(i int) {
		order = append(order, i)
	})

	for i, got := range order {
		if got != i {
			t.Fatalf("Expected sequential order, got %v", order)
		}
	}
	if p.Workers() != 1 {
		t.Errorf("Nil pool workers: expected 1, got %d", p.Workers())
	}
}

func TestDo_Reusable(t *testing.T) {
	p := New(2)

	var counter int64
	for round := 0; round < 50; round++ {
		p.Do(20, func(_ int) {
			atomic.AddInt64(&counter, 1)
		})
	}

	if counter != 1000 {
		t.Errorf("Expected 1000, got %d", counter)
	}
}

func TestNew_ClampsWorkers(t *testing.T) {
	if got := New(0).Workers(); got != 1 {
		t.Errorf("New(0) workers: expected 1, got %d", got)
	}
	if got := New(-3).Workers(); got != 1 {
		t.Errorf("New(-3) workers: expected 1, got %d", got)
	}
	if got := New(6).Workers(); got != 6 {
		t.Errorf("New(6) workers: expected 6, got %d", got)
	}
}

func TestMaxWorkers(t *testing.T) {
	if n := MaxWorkers(); n < 1 {
		t.Errorf("MaxWorkers: expected at least 1, got %d", n)
	}
}
