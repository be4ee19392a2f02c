// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

/*
Package namelock provides per-key exclusive locking.

A comic's directory and its metadata row form one logical resource; every
mutation of that pair (submission, page append, rename, thumbnail write,
promotion) must hold the exclusive lock for that comic while it runs, or two
concurrent appends can both read the same page count and assign colliding
sequence numbers. Operations on distinct keys never contend.
*/
package namelock

import "sync"

// Locker hands out one exclusive mutex per key.
//
// Entries are reference-counted and removed once the last holder releases,
// so the internal map stays proportional to in-flight operations rather than
// the total number of comics ever touched.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty Locker.
func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

// Lock acquires the exclusive lock for key, blocking until it is available.
// It returns the release function; callers must invoke it exactly once,
// typically via defer.
func (locker *Locker) Lock(key string) func() {
	locker.mu.Lock()
	e, ok := locker.entries[key]
	if !ok {
		e = &entry{}
		locker.entries[key] = e
	}
	e.refs++
	locker.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			locker.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(locker.entries, key)
			}
			locker.mu.Unlock()
		})
	}
}
