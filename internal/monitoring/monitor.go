// Package monitoring tracks shift engine activity for the operator
// metrics endpoint and for Prometheus scraping.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doughjo_orders_created_total",
		Help: "Orders synthesized by the arrival scheduler.",
	})
	ordersCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doughjo_orders_completed_total",
		Help: "Orders closed out by the operator.",
	})
	shiftsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doughjo_shifts_started_total",
		Help: "Shifts started.",
	})
	shiftsEndedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doughjo_shifts_ended_total",
		Help: "Shifts ended, by timer expiry or early end.",
	})
	saveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doughjo_shift_save_failures_total",
		Help: "Shift records that could not be persisted.",
	})
)

// Monitor collects and provides metrics for the shift engine.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

func (m *Monitor) bump(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	count, _ := m.metrics[name].(int)
	m.metrics[name] = count + 1
}

// ShiftStarted records the start of a shift.
func (m *Monitor) ShiftStarted() {
	if m == nil {
		return
	}
	shiftsStartedTotal.Inc()
	m.bump("shifts_started")
	m.RecordMetric("last_shift_started", time.Now().Format(time.RFC3339))
}

// ShiftEnded records shift completion along with how many orders were
// still open and how many had been completed.
func (m *Monitor) ShiftEnded(open, completed int) {
	if m == nil {
		return
	}
	shiftsEndedTotal.Inc()
	m.bump("shifts_ended")
	m.RecordMetric("last_shift_open_orders", open)
	m.RecordMetric("last_shift_completed_orders", completed)
}

// OrderCreated records one synthesized order.
func (m *Monitor) OrderCreated() {
	if m == nil {
		return
	}
	ordersCreatedTotal.Inc()
	m.bump("orders_created")
}

// OrderCompleted records one completed order.
func (m *Monitor) OrderCompleted() {
	if m == nil {
		return
	}
	ordersCompletedTotal.Inc()
	m.bump("orders_completed")
}

// SaveFailed records a failed shift submission.
func (m *Monitor) SaveFailed() {
	if m == nil {
		return
	}
	saveFailuresTotal.Inc()
	m.bump("shift_save_failures")
}
