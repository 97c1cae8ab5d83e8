// Package shift implements the shift session engine: the lifecycle
// state machine, the randomized arrival scheduler, and the order aging
// model. A shift runs NotStarted -> Active -> Ended; orders arrive at
// random intervals while active, age against their handling budgets,
// and are closed out by the operator. When the shift ends the full
// record is submitted to the store exactly once.
package shift

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"doughjo/internal/models"
	"doughjo/internal/monitoring"
	"doughjo/internal/timer"
)

// historyLimit caps how many past shifts are shown before a new one
// starts.
const historyLimit = 3

var (
	// ErrInvalidDuration rejects non-positive shift durations.
	ErrInvalidDuration = errors.New("shift duration must be a positive number of minutes")
	// ErrWrongState rejects operations invalid in the current state.
	ErrWrongState = errors.New("operation not valid in current shift state")
)

// CatalogSource fetches the orderable product list for a new shift.
type CatalogSource interface {
	Fetch() ([]models.Product, error)
}

// Store persists completed shifts and serves recent history.
type Store interface {
	Save(rec models.ShiftRecord) error
	Recent(limit int) ([]models.ShiftRecord, error)
}

// Machine owns the single live shift. All mutation goes through its
// methods; timer and network callbacks are serialized by the mutex and
// fenced by an epoch counter so nothing from a superseded shift is
// ever observable.
type Machine struct {
	mu      sync.Mutex
	sched   timer.Scheduler
	rng     *rand.Rand
	catalog CatalogSource
	store   Store
	monitor *monitoring.Monitor

	status        models.ShiftStatus
	shiftDuration int
	timeLeft      int
	orders        []models.Order
	completed     []models.CompletedOrder
	nextOrderID   int
	startTime     time.Time
	endTime       time.Time
	saveStatus    models.SaveStatus
	products      []models.Product
	history       []models.ShiftRecord

	// epoch increments on every lifecycle transition. Callbacks capture
	// the epoch they were armed under and bail out if it has moved on.
	epoch         uint64
	tickHandle    timer.Handle
	arrivalHandle timer.Handle
}

// NewMachine creates a machine in NotStarted and kicks off the initial
// history load.
func NewMachine(sched timer.Scheduler, rng *rand.Rand, catalog CatalogSource, store Store, monitor *monitoring.Monitor) *Machine {
	m := &Machine{
		sched:       sched,
		rng:         rng,
		catalog:     catalog,
		store:       store,
		monitor:     monitor,
		status:      models.ShiftNotStarted,
		nextOrderID: 1,
		saveStatus:  models.SaveStatus{State: models.SaveIdle},
	}
	go m.loadHistory(m.epoch)
	return m
}

// Start begins a new shift of the given length. Valid only from
// NotStarted; non-positive durations are rejected with no state change.
func (m *Machine) Start(durationMinutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != models.ShiftNotStarted {
		return ErrWrongState
	}
	if durationMinutes <= 0 {
		return ErrInvalidDuration
	}

	m.epoch++
	epoch := m.epoch

	m.shiftDuration = durationMinutes * 60
	m.timeLeft = m.shiftDuration
	m.orders = nil
	m.completed = nil
	m.nextOrderID = 1
	m.startTime = m.sched.Now()
	m.endTime = time.Time{}
	m.saveStatus = models.SaveStatus{State: models.SaveIdle}
	m.products = nil
	m.status = models.ShiftActive

	m.tickHandle = m.sched.Every(time.Second, func() { m.tick(epoch) })
	m.armArrivalLocked(epoch, firstArrivalDelay(m.rng))
	go m.fetchCatalog(epoch)

	m.monitor.ShiftStarted()
	log.Printf("shift started: %d minutes", durationMinutes)
	return nil
}

// tick is the once-per-second countdown step.
func (m *Machine) tick(epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch || m.status != models.ShiftActive {
		return
	}
	m.timeLeft--
	if m.timeLeft <= 0 {
		m.timeLeft = 0
		m.finishLocked()
	}
}

// EndEarly ends the shift immediately regardless of time left.
func (m *Machine) EndEarly() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != models.ShiftActive {
		return ErrWrongState
	}
	m.finishLocked()
	return nil
}

// finishLocked transitions to Ended: cancels the countdown and any
// pending arrival, finalizes the record, and submits it exactly once.
func (m *Machine) finishLocked() {
	m.endTime = m.sched.Now()
	m.status = models.ShiftEnded

	if m.tickHandle != nil {
		m.tickHandle.Stop()
		m.tickHandle = nil
	}
	if m.arrivalHandle != nil {
		m.arrivalHandle.Stop()
		m.arrivalHandle = nil
	}

	m.epoch++
	epoch := m.epoch

	// Orders must marshal as an array even when empty; the store
	// treats a null orders field as missing.
	rec := models.ShiftRecord{
		ShiftDuration: m.shiftDuration,
		Orders:        append(make([]models.Order, 0, len(m.orders)), m.orders...),
		Completed:     append([]models.CompletedOrder(nil), m.completed...),
		StartTime:     m.startTime.UnixMilli(),
		EndTime:       m.endTime.UnixMilli(),
	}
	m.saveStatus = models.SaveStatus{State: models.SavePending}
	go m.submit(epoch, rec)

	m.monitor.ShiftEnded(len(m.orders), len(m.completed))
	log.Printf("shift ended: %d open orders, %d completed", len(m.orders), len(m.completed))
}

// submit sends the finalized record to the store and records the
// outcome. Failure is terminal for this shift; the in-memory record
// stays visible so the operator can see what would have been saved.
func (m *Machine) submit(epoch uint64, rec models.ShiftRecord) {
	err := m.store.Save(rec)

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		return
	}
	if err != nil {
		m.saveStatus = models.SaveStatus{State: models.SaveFailed, Reason: err.Error()}
		m.monitor.SaveFailed()
		log.Printf("shift save failed: %v", err)
		return
	}
	m.saveStatus = models.SaveStatus{State: models.SaveSucceeded}
}

// CompleteOrder moves an active order into the completed ledger.
// Unknown ids are a no-op so duplicate operator input is harmless.
func (m *Machine) CompleteOrder(orderID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != models.ShiftActive {
		return ErrWrongState
	}
	for i, order := range m.orders {
		if order.ID != orderID {
			continue
		}
		m.orders = append(m.orders[:i], m.orders[i+1:]...)
		m.completed = append(m.completed, models.CompletedOrder{
			Order:       order,
			CompletedAt: m.sched.Now().UnixMilli(),
		})
		m.monitor.OrderCompleted()
		return nil
	}
	return nil
}

// Reset returns the machine to NotStarted after a shift has ended and
// refreshes the history display.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != models.ShiftEnded {
		return ErrWrongState
	}

	m.epoch++
	m.status = models.ShiftNotStarted
	m.shiftDuration = 0
	m.timeLeft = 0
	m.orders = nil
	m.completed = nil
	m.nextOrderID = 1
	m.startTime = time.Time{}
	m.endTime = time.Time{}
	m.saveStatus = models.SaveStatus{State: models.SaveIdle}
	m.products = nil

	go m.loadHistory(m.epoch)
	return nil
}

// fetchCatalog populates the session catalog snapshot. A failed or
// empty fetch degrades to orderless arrivals rather than failing the
// shift.
func (m *Machine) fetchCatalog(epoch uint64) {
	products, err := m.catalog.Fetch()
	if err != nil {
		log.Printf("catalog fetch failed, continuing without products: %v", err)
		return
	}

	valid := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Valid() {
			valid = append(valid, p)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.status != models.ShiftActive {
		return
	}
	m.products = valid
}

// loadHistory fetches recent shifts for the NotStarted display. Any
// failure yields an empty history; it is informational only.
func (m *Machine) loadHistory(epoch uint64) {
	recent, err := m.store.Recent(historyLimit)
	if err != nil {
		log.Printf("history fetch failed, showing empty history: %v", err)
		recent = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		return
	}
	m.history = recent
}

// Status returns the current lifecycle state.
func (m *Machine) Status() models.ShiftStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}
