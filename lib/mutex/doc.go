// Package mutex implements a reentrant mutual exclusion lock for
// cooperating goroutines. It offers an indefinitely blocking Acquire, a
// time-bounded Attempt and a Release.
//
// Owners:
//
//	Go has no goroutine identity, so every operation takes an explicit
//	Owner token. A token is created with NewOwner and represents one
//	logical holder. Goroutines that share a token are the same holder.
//
// Cancellation:
//
//	A context passed to Acquire or Attempt plays the role of an interrupt.
//	If it is done on entry, or becomes done while the caller is parked, the
//	operation fails with an error matching ErrInterrupted (and ctx.Err()).
//	An interrupted caller never becomes owner. Before returning, it passes
//	one wake-up on to the wait set, so a notify that happened to pick the
//	interrupted goroutine is not lost for the remaining waiters.
//
// Reentrancy:
//
//	The owner may call Acquire or Attempt again and succeeds immediately.
//	By default no acquisition count is kept: a single Release always frees
//	the lock no matter how often it was re-entered. This makes the default
//	mode unsuitable for nested critical sections that each release once.
//	WithHoldCount enables balanced mode, where the lock is only freed once
//	every acquisition has been matched by a Release.
//
// Release:
//
//	Release never fails. Releasing a free lock or a lock held by someone
//	else is a no-op that returns false and is logged at debug level.
//
// Implementation Approach:
//
//	The owner field is guarded by a single monitor (a sync.Mutex plus a
//	wait set). Blocked callers park on the monitor and re-check the owner
//	on every wake-up, so spurious or stolen wake-ups are harmless. Release
//	wakes at most one waiter. There is no fairness or ordering guarantee.
//
// Usage Example:
//
//	m := mutex.NewMutex(mutex.WithName("jobs"))
//	me := mutex.NewOwner()
//
//	ok, err := m.Attempt(ctx, me, 500*time.Millisecond)
//	if err != nil {
//	    // ctx was cancelled
//	}
//	if ok {
//	    defer m.Release(me)
//	    // critical section
//	}
package mutex
