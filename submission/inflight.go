package submission

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type submitter struct {
	email  string
	formID int64
}

type keyLock struct {
	sem     *semaphore.Weighted
	waiters int
}

// inflight serializes submissions per (email, form). A second request for the
// same key waits for the first to finish, then runs the duplicate check
// against whatever the first one committed.
type inflight struct {
	mu    sync.Mutex
	locks map[submitter]*keyLock
}

func newInflight() *inflight {
	return &inflight{locks: make(map[submitter]*keyLock)}
}

// lock blocks until k is free or ctx is done. The returned func releases k.
func (f *inflight) lock(ctx context.Context, k submitter) (func(), error) {
	f.mu.Lock()
	l := f.locks[k]
	if l == nil {
		l = &keyLock{sem: semaphore.NewWeighted(1)}
		f.locks[k] = l
	}
	l.waiters++
	f.mu.Unlock()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		f.done(k, l)
		return nil, err
	}
	return func() {
		l.sem.Release(1)
		f.done(k, l)
	}, nil
}

func (f *inflight) done(k submitter, l *keyLock) {
	f.mu.Lock()
	l.waiters--
	if l.waiters == 0 {
		delete(f.locks, k)
	}
	f.mu.Unlock()
}

// pending reports how many requests hold or wait for k.
func (f *inflight) pending(k submitter) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l := f.locks[k]; l != nil {
		return l.waiters
	}
	return 0
}
