package locker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLocker_SerializesSameKey(t *testing.T) {
	l := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("trailer:1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedLocker_IndependentKeysDoNotBlock(t *testing.T) {
	l := New()

	unlockA := l.Lock("trailer:A")
	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("trailer:B")
		unlockB()
		close(done)
	}()

	<-done
	unlockA()
}

func TestKeyedLocker_MultiKeyOrdering(t *testing.T) {
	l := New()

	// Opposite acquisition orders on the same key pair must not deadlock.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := l.Lock("a", "b")
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := l.Lock("b", "a")
			unlock()
		}()
	}
	wg.Wait()
}

func TestKeyedLocker_UnlockIsIdempotent(t *testing.T) {
	l := New()

	unlock := l.Lock("trailer:1")
	unlock()
	unlock()

	unlock2 := l.Lock("trailer:1")
	unlock2()
}

func TestKeyedLocker_IgnoresEmptyAndDuplicateKeys(t *testing.T) {
	l := New()

	unlock := l.Lock("", "x", "x")
	defer unlock()

	assert.Len(t, l.locks, 1)
}
