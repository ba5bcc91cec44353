// Package monitor implements a condition-variable style monitor whose
// waits can be bounded by a timeout and aborted through a context.
//
// sync.Cond cannot be used for this because its Wait can neither time out
// nor be cancelled. Every parked goroutine instead owns a one-slot channel
// that Notify hands a token to.
package monitor

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// waiter is a single parked goroutine
type waiter struct {
	ch   chan struct{}
	elem *list.Element // nil once the waiter has been notified
}

// Monitor is a mutual exclusion lock combined with a wait set.
// The zero value is not usable, use New.
type Monitor struct {
	mu      sync.Mutex
	waiters *list.List
}

// New creates an unlocked monitor with an empty wait set
func New() *Monitor {
	return &Monitor{waiters: list.New()}
}

// Lock acquires the monitor
func (m *Monitor) Lock() {
	m.mu.Lock()
}

// Unlock releases the monitor
func (m *Monitor) Unlock() {
	m.mu.Unlock()
}

// Wait parks the calling goroutine until it is notified or ctx is done.
// The caller must hold the monitor. It is released while parked and held
// again when Wait returns. A nil error does not mean the awaited condition
// holds, callers have to re-check it.
func (m *Monitor) Wait(ctx context.Context) error {
	return m.wait(ctx, nil)
}

// WaitTimeout is like Wait but also returns (with a nil error) once d has
// elapsed. A non-positive d returns immediately.
func (m *Monitor) WaitTimeout(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	return m.wait(ctx, timer.C)
}

func (m *Monitor) wait(ctx context.Context, timeout <-chan time.Time) error {
	w := &waiter{ch: make(chan struct{}, 1)}
	w.elem = m.waiters.PushBack(w)
	m.mu.Unlock()

	var err error
	select {
	case <-w.ch:
	case <-timeout:
	case <-ctx.Done():
		err = ctx.Err()
	}

	m.mu.Lock()
	// still queued means nobody notified us
	if w.elem != nil {
		m.waiters.Remove(w.elem)
		w.elem = nil
	}
	return err
}

// Notify wakes at most one parked goroutine. Which one is unspecified.
// The caller must hold the monitor.
func (m *Monitor) Notify() {
	front := m.waiters.Front()
	if front == nil {
		return
	}
	w := m.waiters.Remove(front).(*waiter)
	w.elem = nil
	w.ch <- struct{}{}
}

// NotifyAll wakes every parked goroutine. The caller must hold the monitor.
func (m *Monitor) NotifyAll() {
	for m.waiters.Len() > 0 {
		m.Notify()
	}
}

// Waiting returns the number of parked goroutines.
// The caller must hold the monitor.
func (m *Monitor) Waiting() int {
	return m.waiters.Len()
}
