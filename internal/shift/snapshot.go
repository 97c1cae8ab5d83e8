package shift

import "doughjo/internal/models"

// LineView is an order line annotated with its current severity.
type LineView struct {
	models.OrderLine
	Severity Severity `json:"severity"`
}

// OrderView is an active order annotated with aging information,
// recomputed from timestamps on every observation.
type OrderView struct {
	ID           int        `json:"id"`
	Timestamp    int64      `json:"timestamp"`
	Items        []LineView `json:"items"`
	TotalSeconds int        `json:"total_seconds"`
	Severity     Severity   `json:"severity"`
}

// Snapshot is a read-only view of the machine for the presentation
// layer.
type Snapshot struct {
	Status        models.ShiftStatus      `json:"status"`
	ShiftDuration int                     `json:"shiftDuration"`
	TimeLeft      int                     `json:"timeLeft"`
	Orders        []OrderView             `json:"orders"`
	Completed     []models.CompletedOrder `json:"completed"`
	SaveStatus    models.SaveStatus       `json:"saveStatus"`
	History       []models.ShiftRecord    `json:"history"`
}

// Snapshot captures the current state with severities computed as of
// the scheduler's current time.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.sched.Now()
	views := make([]OrderView, 0, len(m.orders))
	for _, order := range m.orders {
		elapsed := order.Elapsed(now)
		items := make([]LineView, 0, len(order.Items))
		for _, line := range order.Items {
			items = append(items, LineView{
				OrderLine: line,
				Severity:  ItemSeverity(elapsed, secondsToDuration(line.SecondsForOrder)),
			})
		}
		views = append(views, OrderView{
			ID:           order.ID,
			Timestamp:    order.Timestamp,
			Items:        items,
			TotalSeconds: order.TotalExpectedSeconds(),
			Severity:     OrderSeverity(elapsed),
		})
	}

	return Snapshot{
		Status:        m.status,
		ShiftDuration: m.shiftDuration,
		TimeLeft:      m.timeLeft,
		Orders:        views,
		Completed:     append([]models.CompletedOrder(nil), m.completed...),
		SaveStatus:    m.saveStatus,
		History:       append([]models.ShiftRecord(nil), m.history...),
	}
}
