package lockmgr

import (
	"context"
	"sort"
	"time"

	"github.com/ValentinKolb/rMutex/lib/mutex"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var log = logger.GetLogger("lockmgr")

type lockMgrImpl struct {
	locks *xsync.MapOf[string, *mutex.Mutex]
	opts  []mutex.Option
}

// NewLockManager creates a lock manager. The options are applied to every
// mutex it creates, in addition to a name equal to the key.
func NewLockManager(opts ...mutex.Option) ILockManager {
	return &lockMgrImpl{
		locks: xsync.NewMapOf[string, *mutex.Mutex](),
		opts:  opts,
	}
}

// lockFor returns the mutex for key, creating it on first use
func (lm *lockMgrImpl) lockFor(key string) (*mutex.Mutex, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	m, _ := lm.locks.LoadOrCompute(key, func() *mutex.Mutex {
		log.Debugf("creating lock %q", key)
		return mutex.NewMutex(append([]mutex.Option{mutex.WithName(key)}, lm.opts...)...)
	})
	return m, nil
}

func (lm *lockMgrImpl) AcquireLock(ctx context.Context, key string, owner mutex.Owner) (bool, error) {
	m, err := lm.lockFor(key)
	if err != nil {
		return false, err
	}
	return m.Acquire(ctx, owner)
}

func (lm *lockMgrImpl) AttemptLock(ctx context.Context, key string, owner mutex.Owner, timeout time.Duration) (bool, error) {
	m, err := lm.lockFor(key)
	if err != nil {
		return false, err
	}
	return m.Attempt(ctx, owner, timeout)
}

func (lm *lockMgrImpl) ReleaseLock(key string, owner mutex.Owner) bool {
	// Releasing an unknown lock must not create it
	m, ok := lm.locks.Load(key)
	if !ok {
		return false
	}
	return m.Release(owner)
}

func (lm *lockMgrImpl) Holder(key string) (mutex.Owner, bool) {
	m, ok := lm.locks.Load(key)
	if !ok {
		return mutex.Owner{}, false
	}
	return m.Owner()
}

func (lm *lockMgrImpl) Keys() []string {
	keys := make([]string, 0, lm.locks.Size())
	lm.locks.Range(func(key string, _ *mutex.Mutex) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	return keys
}
