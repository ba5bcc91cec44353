// Package lockmgr manages a set of named locks inside a single process.
// Every key maps to its own mutex.Mutex, which is created lazily on first
// acquisition and kept for the lifetime of the manager.
//
// Core Functionality:
//   - Blocking and time-bounded acquisition per key
//   - Release with ownership verification (non-owners are ignored)
//   - Inspection of the current holder and the known keys
//
// Implementation Approach:
//
//	The registry is an xsync.MapOf, which shards keys internally. Creating
//	a lock uses LoadOrCompute so that concurrent first acquisitions of the
//	same key always share one mutex. Releasing or inspecting an unknown key
//	never creates a lock.
//
//	All locking semantics (reentrancy, cancellation, wake-ups) are those of
//	package mutex. Options passed to NewLockManager are applied to every
//	mutex the manager creates, e.g. mutex.WithHoldCount().
//
// Scope:
//
//	Locks are local to the process. There is no expiry and no eviction of
//	unused keys.
//
// Usage Example:
//
//	mgr := lockmgr.NewLockManager()
//	me := mutex.NewOwner()
//
//	ok, err := mgr.AttemptLock(ctx, "resource:123", me, time.Second)
//	if err != nil {
//	    // invalid key or ctx was cancelled
//	}
//	if ok {
//	    defer mgr.ReleaseLock("resource:123", me)
//	    // use the resource
//	}
package lockmgr
