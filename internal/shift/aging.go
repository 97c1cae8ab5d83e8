package shift

import "time"

// Severity classifies how close an order or line item is to blowing
// its handling budget. Derived purely from timestamps so a display
// refresh can always recompute it without auxiliary state.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

const (
	// Remaining-budget thresholds for individual line items.
	itemCriticalBudget = 45 * time.Second
	itemWarningBudget  = 90 * time.Second

	// Total-elapsed thresholds for the order as a whole.
	orderWarningAge  = 300 * time.Second
	orderCriticalAge = 600 * time.Second
)

// ItemSeverity classifies a line item by its remaining handling
// budget: expected time minus time already elapsed.
func ItemSeverity(elapsed, expected time.Duration) Severity {
	remaining := expected - elapsed
	switch {
	case remaining <= itemCriticalBudget:
		return SeverityCritical
	case remaining <= itemWarningBudget:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// OrderSeverity classifies a whole order by how long it has been open,
// regardless of its expected handling time.
func OrderSeverity(elapsed time.Duration) Severity {
	switch {
	case elapsed >= orderCriticalAge:
		return SeverityCritical
	case elapsed >= orderWarningAge:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}
