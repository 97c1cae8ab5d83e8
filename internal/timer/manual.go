package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven entirely by Advance calls. Time never
// moves on its own, which makes countdown and arrival behavior fully
// deterministic in tests.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	entries []*manualEntry
	nextID  int
}

type manualEntry struct {
	id      int
	due     time.Time
	period  time.Duration // zero for one-shot entries
	fn      func()
	stopped bool
}

// NewManual creates a manual scheduler starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	return m.add(d, d, fn)
}

func (m *Manual) add(d, period time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := &manualEntry{
		id:     m.nextID,
		due:    m.now.Add(d),
		period: period,
		fn:     fn,
	}
	m.entries = append(m.entries, e)
	return manualHandle{m: m, e: e}
}

// Advance moves the clock forward by d, firing every due callback in
// due order. Callbacks run on the caller's goroutine without the
// scheduler lock held, so they may arm or stop entries themselves.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	deadline := m.now.Add(d)
	for {
		e := m.nextDue(deadline)
		if e == nil {
			break
		}
		m.now = e.due
		if e.period > 0 {
			e.due = e.due.Add(e.period)
		} else {
			m.remove(e.id)
		}
		fn := e.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = deadline
	m.mu.Unlock()
}

// nextDue returns the earliest unstopped entry due at or before the
// deadline. Ties break by arming order.
func (m *Manual) nextDue(deadline time.Time) *manualEntry {
	pending := make([]*manualEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if !e.stopped && !e.due.After(deadline) {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].due.Equal(pending[j].due) {
			return pending[i].id < pending[j].id
		}
		return pending[i].due.Before(pending[j].due)
	})
	return pending[0]
}

func (m *Manual) remove(id int) {
	for i, e := range m.entries {
		if e.id == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

// Pending returns the number of armed entries, for test assertions.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, e := range m.entries {
		if !e.stopped {
			count++
		}
	}
	return count
}

type manualHandle struct {
	m *Manual
	e *manualEntry
}

func (h manualHandle) Stop() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	h.e.stopped = true
	h.m.remove(h.e.id)
}
