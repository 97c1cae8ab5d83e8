package models

import "time"

// OrderLine represents a single catalog item on an order.
// Copied from the catalog snapshot at creation time so later catalog
// changes never affect an existing order.
type OrderLine struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	SecondsForOrder int     `json:"seconds_for_order"`
}

// Order represents one unit of work created by the arrival scheduler.
// IDs are unique and strictly increasing within a shift, starting at 1.
// Timestamps are epoch milliseconds to match the store API.
type Order struct {
	ID        int         `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Items     []OrderLine `json:"items"`
}

// CompletedOrder is an order that has been closed out by the operator.
// CompletedAt minus Timestamp is the realized handling time.
type CompletedOrder struct {
	Order
	CompletedAt int64 `json:"completedAt"`
}

// NewOrder builds an order from catalog lines with the given id.
func NewOrder(id int, createdAt time.Time, items []OrderLine) Order {
	return Order{
		ID:        id,
		Timestamp: createdAt.UnixMilli(),
		Items:     items,
	}
}

// CreatedAt returns the order creation time.
func (o Order) CreatedAt() time.Time {
	return time.UnixMilli(o.Timestamp)
}

// TotalExpectedSeconds returns the summed handling budget of all lines.
func (o Order) TotalExpectedSeconds() int {
	total := 0
	for _, item := range o.Items {
		total += item.SecondsForOrder
	}
	return total
}

// Elapsed returns how long the order has been open as of now.
func (o Order) Elapsed(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt())
}
