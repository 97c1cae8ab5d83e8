package shift

import (
	"math/rand"
	"time"

	"doughjo/internal/models"
)

// Arrival timing in seconds. The first order lands shortly after the
// shift opens; later orders follow at a slower, irregular cadence.
const (
	firstArrivalMin = 2
	firstArrivalMax = 5
	nextArrivalMin  = 3
	nextArrivalMax  = 10

	maxItemsPerOrder = 3
)

// randomDelay draws a whole-second delay uniformly from [min, max].
func randomDelay(rng *rand.Rand, min, max int) time.Duration {
	return time.Duration(min+rng.Intn(max-min+1)) * time.Second
}

func firstArrivalDelay(rng *rand.Rand) time.Duration {
	return randomDelay(rng, firstArrivalMin, firstArrivalMax)
}

func nextArrivalDelay(rng *rand.Rand) time.Duration {
	return randomDelay(rng, nextArrivalMin, nextArrivalMax)
}

// pickLines draws 1..min(3, len(products)) distinct products uniformly
// at random, as a shuffle followed by a prefix.
func pickLines(rng *rand.Rand, products []models.Product) []models.OrderLine {
	if len(products) == 0 {
		return nil
	}
	limit := maxItemsPerOrder
	if len(products) < limit {
		limit = len(products)
	}
	k := 1 + rng.Intn(limit)

	lines := make([]models.OrderLine, 0, k)
	for _, idx := range rng.Perm(len(products))[:k] {
		p := products[idx]
		lines = append(lines, models.OrderLine{
			Name:            p.Name,
			Price:           p.Price,
			SecondsForOrder: p.SecondsForOrder,
		})
	}
	return lines
}

// armArrivalLocked schedules the next arrival. Caller holds the lock.
func (m *Machine) armArrivalLocked(epoch uint64, delay time.Duration) {
	m.arrivalHandle = m.sched.After(delay, func() { m.arrive(epoch) })
}

// arrive synthesizes one order and reschedules itself. An empty
// catalog snapshot skips order creation but keeps the cadence going so
// a late catalog fetch still produces orders for the rest of the
// shift.
func (m *Machine) arrive(epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch || m.status != models.ShiftActive {
		return
	}

	if lines := pickLines(m.rng, m.products); len(lines) > 0 {
		order := models.NewOrder(m.nextOrderID, m.sched.Now(), lines)
		m.nextOrderID++
		m.orders = append(m.orders, order)
		m.monitor.OrderCreated()
	}

	m.armArrivalLocked(epoch, nextArrivalDelay(m.rng))
}
