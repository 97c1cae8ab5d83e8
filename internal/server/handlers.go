package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doughjo/internal/shift"
)

// StartShiftRequest is the request body for starting a shift. Minutes
// arrives as whatever the operator typed; parsing happens here so the
// machine only ever sees integers.
type StartShiftRequest struct {
	Minutes string `json:"minutes"`
}

// handleShiftState returns the live snapshot with severities computed
// as of now.
func (s *ShiftServer) handleShiftState(c *gin.Context) {
	c.JSON(http.StatusOK, s.machine.Snapshot())
}

// handleStartShift starts a new shift of the requested length.
func (s *ShiftServer) handleStartShift(c *gin.Context) {
	var req StartShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	minutes, err := strconv.Atoi(req.Minutes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shift duration must be a number"})
		return
	}

	if err := s.machine.Start(minutes); err != nil {
		s.renderMachineError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.machine.Snapshot())
}

// handleEndShift ends the active shift early.
func (s *ShiftServer) handleEndShift(c *gin.Context) {
	if err := s.machine.EndEarly(); err != nil {
		s.renderMachineError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.machine.Snapshot())
}

// handleResetShift returns an ended shift to the start screen.
func (s *ShiftServer) handleResetShift(c *gin.Context) {
	if err := s.machine.Reset(); err != nil {
		s.renderMachineError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.machine.Snapshot())
}

// handleCompleteOrder closes out one active order. Completing an
// unknown id succeeds without effect, which makes double-clicks safe.
func (s *ShiftServer) handleCompleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order id must be a number"})
		return
	}

	if err := s.machine.CompleteOrder(orderID); err != nil {
		s.renderMachineError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.machine.Snapshot())
}

// handleMetrics returns current engine metrics
func (s *ShiftServer) handleMetrics(c *gin.Context) {
	metrics := s.monitor.GetMetrics()
	c.JSON(http.StatusOK, metrics)
}

// renderMachineError maps machine errors to HTTP statuses: invalid
// input is 400, wrong-state operations are 409. The machine state is
// untouched in both cases.
func (s *ShiftServer) renderMachineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shift.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, shift.ErrWrongState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
