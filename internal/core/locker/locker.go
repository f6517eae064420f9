package locker

import (
	"sort"
	"sync"
)

// KeyedLocker serializes units of work that target the same aggregate.
// Callers lock the ids they are about to mutate (trailer id, slot id)
// and hold the lock for the duration of the unit of work.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyedLocker.
func New() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*lockEntry)}
}

// Lock acquires the locks for all given keys and returns the release
// function. Keys are deduplicated and acquired in sorted order so two
// units of work sharing keys cannot deadlock. Empty keys are ignored.
func (l *KeyedLocker) Lock(keys ...string) func() {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	sort.Strings(unique)

	entries := make([]*lockEntry, 0, len(unique))
	for _, k := range unique {
		entries = append(entries, l.acquire(k))
	}
	for _, e := range entries {
		e.mu.Lock()
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}
		for _, k := range unique {
			l.release(k)
		}
	}
}

func (l *KeyedLocker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		e = &lockEntry{}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *KeyedLocker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
