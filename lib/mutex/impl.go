package mutex

import (
	"context"
	"fmt"
	"time"

	"github.com/ValentinKolb/rMutex/lib/mutex/internal/monitor"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("mutex")

// compile-time interface check.
var _ IMutex = (*Mutex)(nil)

// Mutex is a reentrant lock whose state is a single owner guarded by a monitor.
// A Mutex must be created with NewMutex and must not be copied.
type Mutex struct {
	mon *monitor.Monitor

	// guarded by mon
	owner Owner
	holds uint64

	counting bool
	name     string
	metrics  *lockMetrics
}

// NewMutex creates an unlocked mutex
func NewMutex(opts ...Option) *Mutex {
	m := &Mutex{
		mon:  monitor.New(),
		name: defaultName,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.metrics = newLockMetrics(m.name)
	return m
}

// Name returns the name given with WithName
func (m *Mutex) Name() string {
	return m.name
}

func (m *Mutex) Acquire(ctx context.Context, owner Owner) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, m.interrupted(owner, err)
	}
	if owner.IsZero() {
		return false, ErrInvalidOwner
	}

	m.mon.Lock()
	defer m.mon.Unlock()

	if m.owner == owner {
		m.reenter()
		return true, nil
	}

	start := time.Now()
	for !m.owner.IsZero() {
		if err := m.mon.Wait(ctx); err != nil {
			// pass on a wake-up this goroutine may have consumed
			m.mon.Notify()
			m.metrics.observeWait(start)
			return false, m.interrupted(owner, err)
		}
	}

	m.claim(owner)
	m.metrics.observeWait(start)
	return true, nil
}

func (m *Mutex) Attempt(ctx context.Context, owner Owner, timeout time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, m.interrupted(owner, err)
	}
	if owner.IsZero() {
		return false, ErrInvalidOwner
	}

	m.mon.Lock()
	defer m.mon.Unlock()

	switch {
	case m.owner.IsZero():
		m.claim(owner)
		return true, nil
	case m.owner == owner:
		m.reenter()
		return true, nil
	case timeout <= 0:
		m.metrics.failed.Inc()
		return false, nil
	}

	start := time.Now()
	deadline := start.Add(timeout)
	remaining := timeout
	for {
		if err := m.mon.WaitTimeout(ctx, remaining); err != nil {
			m.mon.Notify()
			m.metrics.observeWait(start)
			return false, m.interrupted(owner, err)
		}
		if m.owner.IsZero() {
			m.claim(owner)
			m.metrics.observeWait(start)
			return true, nil
		}
		remaining = time.Until(deadline)
		if remaining <= 0 {
			m.metrics.failed.Inc()
			m.metrics.observeWait(start)
			log.Debugf("%s: %s gave up after %v", m.name, owner, timeout)
			return false, nil
		}
	}
}

// AttemptMillis is Attempt with the timeout given in milliseconds
func (m *Mutex) AttemptMillis(ctx context.Context, owner Owner, msecs int64) (bool, error) {
	return m.Attempt(ctx, owner, time.Duration(msecs)*time.Millisecond)
}

func (m *Mutex) Release(owner Owner) bool {
	m.mon.Lock()
	defer m.mon.Unlock()

	if m.owner.IsZero() {
		m.metrics.releaseIgnored.Inc()
		log.Debugf("%s: release by %s ignored, lock is free", m.name, owner)
		return false
	}
	if m.owner != owner {
		m.metrics.releaseIgnored.Inc()
		log.Debugf("%s: release by %s ignored, lock is held by %s", m.name, owner, m.owner)
		return false
	}

	if m.counting && m.holds > 1 {
		m.holds--
		return true
	}

	m.owner = Owner{}
	m.holds = 0
	m.metrics.released.Inc()
	m.mon.Notify()
	return true
}

func (m *Mutex) Owner() (Owner, bool) {
	m.mon.Lock()
	defer m.mon.Unlock()
	return m.owner, !m.owner.IsZero()
}

// --------------------------------------------------------------------------
// Helper (must be called while holding the monitor)
// --------------------------------------------------------------------------

func (m *Mutex) claim(owner Owner) {
	m.owner = owner
	m.holds = 1
	m.metrics.acquired.Inc()
}

func (m *Mutex) reenter() {
	if m.counting {
		m.holds++
	}
	m.metrics.reentered.Inc()
}

// interrupted is safe to call without holding the monitor
func (m *Mutex) interrupted(owner Owner, cause error) error {
	m.metrics.interrupted.Inc()
	log.Debugf("%s: %s interrupted: %v", m.name, owner, cause)
	return fmt.Errorf("%w: %w", ErrInterrupted, cause)
}
