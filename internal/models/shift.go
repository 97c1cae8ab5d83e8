package models

// ShiftStatus represents the lifecycle state of a shift.
type ShiftStatus string

const (
	ShiftNotStarted ShiftStatus = "not_started"
	ShiftActive     ShiftStatus = "active"
	ShiftEnded      ShiftStatus = "ended"
)

// SaveState represents the persistence state of an ended shift.
type SaveState string

const (
	SaveIdle      SaveState = "idle"
	SavePending   SaveState = "pending"
	SaveSucceeded SaveState = "succeeded"
	SaveFailed    SaveState = "failed"
)

// SaveStatus is the tri-state outcome of the single shift submission.
// Reason is only set when State is SaveFailed.
type SaveStatus struct {
	State  SaveState `json:"state"`
	Reason string    `json:"reason,omitempty"`
}

// ShiftRecord is the finalized record of one shift as sent to and
// returned by the store. Completed orders carry completedAt; orders
// still open when the shift ended do not.
type ShiftRecord struct {
	ShiftDuration int              `json:"shiftDuration"`
	Orders        []Order          `json:"orders"`
	Completed     []CompletedOrder `json:"completed,omitempty"`
	StartTime     int64            `json:"startTime"`
	EndTime       int64            `json:"endTime"`
}
