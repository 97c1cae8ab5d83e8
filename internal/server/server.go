// Package server exposes the shift engine to the presentation layer
// over HTTP and websocket.
package server

import (
	"doughjo/internal/monitoring"
	"doughjo/internal/shift"

	"github.com/gin-gonic/gin"
)

// ShiftServer handles operator requests against the live shift.
type ShiftServer struct {
	router  *gin.Engine
	machine *shift.Machine
	monitor *monitoring.Monitor
}

// NewShiftServer creates a server around an existing machine. The
// routes are mounted on the router passed in so the store endpoints
// and the operator API can share one listener.
func NewShiftServer(router *gin.Engine, machine *shift.Machine, monitor *monitoring.Monitor) *ShiftServer {
	server := &ShiftServer{
		router:  router,
		machine: machine,
		monitor: monitor,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures the API routes
func (s *ShiftServer) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.GET("/shift", s.handleShiftState)
		api.POST("/shift/start", s.handleStartShift)
		api.POST("/shift/end", s.handleEndShift)
		api.POST("/shift/reset", s.handleResetShift)
		api.POST("/shift/orders/:id/complete", s.handleCompleteOrder)
		api.GET("/metrics", s.handleMetrics)
	}
}

// Router returns the Gin router
func (s *ShiftServer) Router() *gin.Engine {
	return s.router
}

// handleHealth reports server liveness.
func (s *ShiftServer) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
