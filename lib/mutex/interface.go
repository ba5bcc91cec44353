package mutex

import (
	"context"
	"errors"
	"time"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IMutex is the interface of a reentrant, cancellable mutual exclusion lock.
type IMutex interface {
	// Acquire blocks until owner holds the lock. It returns true once the lock is held.
	// If owner already holds the lock it returns immediately.
	Acquire(ctx context.Context, owner Owner) (ok bool, err error)

	// Attempt tries to obtain the lock, waiting at most timeout.
	// A non-positive timeout never waits. Returns whether the lock is held by owner.
	Attempt(ctx context.Context, owner Owner, timeout time.Duration) (ok bool, err error)

	// Release frees the lock if owner holds it. It never fails.
	// The return value reports whether the call had any effect.
	Release(owner Owner) (ok bool)

	// Owner returns the current owner. The boolean is false if the lock is free.
	Owner() (owner Owner, held bool)
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrInterrupted is returned when the context of a caller is done before
	// or while it waits for the lock.
	ErrInterrupted = errors.New("mutex: operation interrupted")

	// ErrInvalidOwner is returned when the zero Owner is used as caller identity.
	// A done context is reported as ErrInterrupted first.
	ErrInvalidOwner = errors.New("mutex: invalid owner")
)
