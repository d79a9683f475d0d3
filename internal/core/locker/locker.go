// Package locker provides per-account-number mutual exclusion. The full
// load-validate-mutate-record sequence of a balance operation runs while
// holding the account's lock, so two operations on the same account can
// never interleave. Operations on different accounts never contend.
package locker

import (
	"context"
	"fmt"
	"sync"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// entry is one keyed lock. The token channel has capacity 1 and holds a
// token exactly when the lock is free; blocked receivers are woken by the
// runtime in FIFO order, which keeps waiters starvation-free.
type entry struct {
	token chan struct{}
	refs  int
}

// Locker is a process-wide keyed lock table. Entries are refcounted and
// removed once nobody holds or waits on them, so the table stays bounded
// by the number of in-flight operations.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

// Acquire blocks until the lock for key is held or ctx is done. On success
// it returns a release function that must be called exactly once; calling
// it more than once is a no-op. A cancelled or expired ctx surfaces as the
// retryable LockUnavailable code with no side effects.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{token: make(chan struct{}, 1)}
		e.token <- struct{}{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case <-e.token:
		var once sync.Once
		release := func() {
			once.Do(func() {
				e.token <- struct{}{}
				l.unref(key, e)
			})
		}
		return release, nil
	case <-ctx.Done():
		l.unref(key, e)
		lockErr := domain.NewError(domain.LockUnavailable)
		return nil, fmt.Errorf("%w: %s", lockErr, ctx.Err())
	}
}

func (l *Locker) unref(key string, e *entry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()
}
