// Package timer provides the scheduling primitives the shift engine
// runs on: fire-once delays, fixed-period repetition, and cancellation.
// The Scheduler interface exists so tests can drive the engine with a
// manual clock instead of real time.
package timer

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Stop is idempotent; stopping a
// handle whose callback already ran is a no-op.
type Handle interface {
	Stop()
}

// Scheduler arms callbacks to run after a delay or at a fixed period.
type Scheduler interface {
	// After runs fn once after d has elapsed.
	After(d time.Duration, fn func()) Handle
	// Every runs fn repeatedly, once per period, until stopped.
	Every(d time.Duration, fn func()) Handle
	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

// Wall is the production Scheduler backed by the system clock.
type Wall struct{}

// NewWall creates a Scheduler backed by real time.
func NewWall() Wall {
	return Wall{}
}

func (Wall) Now() time.Time {
	return time.Now()
}

func (Wall) After(d time.Duration, fn func()) Handle {
	return afterHandle{t: time.AfterFunc(d, fn)}
}

func (Wall) Every(d time.Duration, fn func()) Handle {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return &everyHandle{ticker: ticker, done: done}
}

type afterHandle struct {
	t *time.Timer
}

func (h afterHandle) Stop() {
	h.t.Stop()
}

type everyHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *everyHandle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}
