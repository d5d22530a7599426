package locks

import (
	"context"
	"sync"
)

// Locker serializes work on one key. The returned func releases the lock and
// is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Key builds the lock key of a (subject, actor) pair.
func Key(subject, actor string) string {
	return "arcade:lock:" + subject + ":" + actor
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

// LocalLocker serializes within one process only.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry)}
}

func (v *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	v.mu.Lock()
	entry, ok := v.entries[key]
	if !ok {
		entry = &localEntry{ch: make(chan struct{}, 1)}
		v.entries[key] = entry
	}
	entry.refs++
	v.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		v.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			v.release(key, entry)
		})
	}, nil
}

func (v *LocalLocker) release(key string, entry *localEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(v.entries, key)
	}
}

// Size is the number of keys currently held or waited on.
func (v *LocalLocker) Size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.entries)
}
