package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestPacer_FirstRequestImmediate(t *testing.T) {
	p := NewPacer(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("first Wait() should be immediate")
	}
}

func TestPacer_EnforcesMinInterval(t *testing.T) {
	interval := 100 * time.Millisecond
	p := NewPacer(interval)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}

	start := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("second Wait() failed: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 80*time.Millisecond {
		t.Errorf("second Wait() returned after %v, want >= ~100ms", elapsed)
	}
}

func TestPacer_ConcurrentCallersNeverTooClose(t *testing.T) {
	interval := 50 * time.Millisecond
	p := NewPacer(interval)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	const callers = 4
	var mu sync.Mutex
	var times []time.Time

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Wait(ctx); err != nil {
				t.Errorf("Wait() failed: %v", err)
				return
			}
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(times); i++ {
		for j := 0; j < i; j++ {
			gap := times[i].Sub(times[j])
			if gap < 0 {
				gap = -gap
			}
			if gap < 40*time.Millisecond {
				t.Errorf("requests %d and %d only %v apart, want >= ~50ms", i, j, gap)
			}
		}
	}
}

func TestPacer_ContextCanceled(t *testing.T) {
	p := NewPacer(10 * time.Second)
	// Exhaust the slot.
	p.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := p.Wait(ctx); err == nil {
		t.Error("Wait() should fail when context canceled before the interval elapses")
	}
}

func TestPacer_ZeroIntervalDisablesPacing(t *testing.T) {
	p := NewPacer(0)
	for i := 0; i < 10; i++ {
		if !p.Allow() {
			t.Fatal("unpaced pacer should always allow")
		}
	}
}
