package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// waitUntilParked blocks until n goroutines are parked on m
func waitUntilParked(t *testing.T, m *Monitor, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m.Lock()
		parked := m.Waiting()
		m.Unlock()
		if parked >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timeout waiting for %d parked goroutines", n)
}

// TestNotifyWakesOne verifies that a single notify wakes exactly one waiter
func TestNotifyWakesOne(t *testing.T) {
	m := New()
	woken := make(chan int, 2)

	for i := 0; i < 2; i++ {
		go func(id int) {
			m.Lock()
			defer m.Unlock()
			if err := m.Wait(context.Background()); err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			woken <- id
		}(i)
	}
	waitUntilParked(t, m, 2)

	m.Lock()
	m.Notify()
	m.Unlock()

	select {
	case <-woken:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for the first waiter")
	}

	select {
	case id := <-woken:
		t.Fatalf("Waiter %d woke without being notified", id)
	case <-time.After(50 * time.Millisecond):
		// Expected, the second waiter is still parked
	}

	m.Lock()
	if got := m.Waiting(); got != 1 {
		t.Errorf("Expected 1 parked goroutine, got %d", got)
	}
	m.Notify()
	m.Unlock()

	select {
	case <-woken:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for the second waiter")
	}
}

// TestNotifyWithoutWaiters verifies that notify on an empty wait set is a no-op
func TestNotifyWithoutWaiters(t *testing.T) {
	m := New()
	m.Lock()
	m.Notify()
	m.NotifyAll()
	if got := m.Waiting(); got != 0 {
		t.Errorf("Expected empty wait set, got %d", got)
	}
	m.Unlock()
}

// TestNotifyAll verifies that all parked goroutines are woken
func TestNotifyAll(t *testing.T) {
	m := New()
	const n = 5
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			m.Lock()
			defer m.Unlock()
			_ = m.Wait(context.Background())
		}()
	}
	waitUntilParked(t, m, n)

	m.Lock()
	m.NotifyAll()
	m.Unlock()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for all waiters")
	}
}

// TestWaitTimeout verifies that a bounded wait returns after its budget
func TestWaitTimeout(t *testing.T) {
	m := New()
	const d = 30 * time.Millisecond

	m.Lock()
	start := time.Now()
	err := m.WaitTimeout(context.Background(), d)
	elapsed := time.Since(start)
	parked := m.Waiting()
	m.Unlock()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if elapsed < d {
		t.Errorf("Wait returned after %v, expected at least %v", elapsed, d)
	}
	if parked != 0 {
		t.Errorf("Timed out waiter still in wait set (%d)", parked)
	}
}

// TestWaitTimeoutNonPositive verifies that a zero budget does not park
func TestWaitTimeoutNonPositive(t *testing.T) {
	m := New()
	m.Lock()
	defer m.Unlock()
	for _, d := range []time.Duration{0, -time.Second} {
		if err := m.WaitTimeout(context.Background(), d); err != nil {
			t.Errorf("WaitTimeout(%v) returned %v", d, err)
		}
	}
}

// TestWaitCancelled verifies that a cancelled context aborts the wait and
// removes the waiter from the wait set
func TestWaitCancelled(t *testing.T) {
	m := New()
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)

	go func() {
		m.Lock()
		defer m.Unlock()
		result <- m.Wait(ctx)
	}()
	waitUntilParked(t, m, 1)
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for cancelled waiter")
	}

	m.Lock()
	defer m.Unlock()
	if got := m.Waiting(); got != 0 {
		t.Errorf("Cancelled waiter still in wait set (%d)", got)
	}
}

// TestWaitReleasesMonitor verifies that a parked goroutine does not hold the monitor
func TestWaitReleasesMonitor(t *testing.T) {
	m := New()
	go func() {
		m.Lock()
		defer m.Unlock()
		_ = m.WaitTimeout(context.Background(), time.Second)
	}()
	waitUntilParked(t, m, 1)

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		m.Notify()
		m.Unlock()
		close(acquired)
	}()
	select {
	case <-acquired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Monitor was held by a parked goroutine")
	}
}
