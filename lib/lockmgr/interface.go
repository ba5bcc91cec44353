package lockmgr

import (
	"context"
	"time"

	"github.com/ValentinKolb/rMutex/lib/mutex"
)

// ILockManager defines the interface for a manager of named locks.
type ILockManager interface {
	// AcquireLock blocks until owner holds the lock for the given key.
	// Return a boolean indicating whether the lock was acquired, and an error if the context was done.
	AcquireLock(ctx context.Context, key string, owner mutex.Owner) (ok bool, err error)

	// AttemptLock tries to acquire the lock for the given key, waiting at most timeout.
	// Return a boolean indicating whether the lock was acquired, and an error if the context was done.
	AttemptLock(ctx context.Context, key string, owner mutex.Owner, timeout time.Duration) (ok bool, err error)

	// ReleaseLock releases the lock for the given key.
	// Return a boolean indicating whether the lock was released.
	// The method returns false if the lock did not exist or is not held by owner.
	ReleaseLock(key string, owner mutex.Owner) (ok bool)

	// Holder returns the current owner of the lock for the given key.
	Holder(key string) (owner mutex.Owner, held bool)

	// Keys returns the keys of all locks known to the manager, sorted.
	Keys() []string
}
