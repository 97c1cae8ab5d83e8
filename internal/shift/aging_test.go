package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItemSeverity(t *testing.T) {
	cases := []struct {
		name     string
		elapsed  time.Duration
		expected time.Duration
		want     Severity
	}{
		{"plenty of budget left", 10 * time.Second, 300 * time.Second, SeverityNormal},
		{"just above warning band", 209 * time.Second, 300 * time.Second, SeverityNormal},
		{"exactly 90s remaining", 210 * time.Second, 300 * time.Second, SeverityWarning},
		{"inside warning band", 240 * time.Second, 300 * time.Second, SeverityWarning},
		{"exactly 45s remaining", 255 * time.Second, 300 * time.Second, SeverityCritical},
		{"budget exhausted", 300 * time.Second, 300 * time.Second, SeverityCritical},
		{"budget overrun", 400 * time.Second, 300 * time.Second, SeverityCritical},
		{"tiny expected time is critical immediately", 0, 30 * time.Second, SeverityCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ItemSeverity(tc.elapsed, tc.expected))
		})
	}
}

func TestOrderSeverity(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    Severity
	}{
		{"fresh order", 0, SeverityNormal},
		{"just under five minutes", 299 * time.Second, SeverityNormal},
		{"exactly five minutes", 300 * time.Second, SeverityWarning},
		{"just under ten minutes", 599 * time.Second, SeverityWarning},
		{"exactly ten minutes", 600 * time.Second, SeverityCritical},
		{"long overdue", time.Hour, SeverityCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OrderSeverity(tc.elapsed))
		})
	}
}

// Classification must be reconstructible from timestamps alone: the
// same (createdAt, now) pair always yields the same answer.
func TestSeverityIsStateless(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	now := createdAt.Add(7 * time.Minute)

	first := OrderSeverity(now.Sub(createdAt))
	second := OrderSeverity(now.Sub(createdAt))
	assert.Equal(t, first, second)
	assert.Equal(t, SeverityWarning, first)
}
