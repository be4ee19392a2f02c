// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package namelock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inkfold/inkfold/pkg/namelock"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	locker := namelock.New()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locker.Lock("comic:solstice")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestLocker_DistinctKeysDoNotBlock(t *testing.T) {
	locker := namelock.New()

	releaseA := locker.Lock("comic:alpha")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release := locker.Lock("comic:beta")
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a distinct key blocked")
	}
}

func TestLocker_ReleaseIsIdempotent(t *testing.T) {
	locker := namelock.New()

	release := locker.Lock("pending:42")
	release()
	assert.NotPanics(t, func() { release() })

	// The key must be reusable after release.
	again := locker.Lock("pending:42")
	again()
}
