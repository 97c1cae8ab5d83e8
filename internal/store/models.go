// Package store is the server side of the doughjo shift engine's two
// collaborators: the product catalog read endpoint and the shift
// persistence endpoints.
package store

import (
	"encoding/json"

	"github.com/jinzhu/gorm"

	"doughjo/internal/models"
)

// Product is a catalog row. The JSON field names are the store API
// wire format consumed by the shift engine.
type Product struct {
	gorm.Model
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	SecondsForOrder int     `json:"seconds_for_order"`
}

// CompletedShift is one persisted shift record. The order ledgers are
// stored as serialized JSON text columns.
type CompletedShift struct {
	gorm.Model
	ShiftDuration int
	StartTime     int64
	EndTime       int64
	OrdersJSON    string `gorm:"type:text"`
	CompletedJSON string `gorm:"type:text"`
}

// SetOrders serializes the open-order ledger for storage
func (s *CompletedShift) SetOrders(orders []models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	s.OrdersJSON = string(data)
	return nil
}

// GetOrders deserializes the open-order ledger
func (s *CompletedShift) GetOrders() ([]models.Order, error) {
	if s.OrdersJSON == "" {
		return nil, nil
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(s.OrdersJSON), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetCompleted serializes the completed-order ledger for storage
func (s *CompletedShift) SetCompleted(completed []models.CompletedOrder) error {
	data, err := json.Marshal(completed)
	if err != nil {
		return err
	}
	s.CompletedJSON = string(data)
	return nil
}

// GetCompleted deserializes the completed-order ledger
func (s *CompletedShift) GetCompleted() ([]models.CompletedOrder, error) {
	if s.CompletedJSON == "" {
		return nil, nil
	}
	var completed []models.CompletedOrder
	if err := json.Unmarshal([]byte(s.CompletedJSON), &completed); err != nil {
		return nil, err
	}
	return completed, nil
}

// Record converts the stored row back into the wire-format shift
// record served by the history endpoint.
func (s *CompletedShift) Record() (models.ShiftRecord, error) {
	orders, err := s.GetOrders()
	if err != nil {
		return models.ShiftRecord{}, err
	}
	completed, err := s.GetCompleted()
	if err != nil {
		return models.ShiftRecord{}, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return models.ShiftRecord{
		ShiftDuration: s.ShiftDuration,
		Orders:        orders,
		Completed:     completed,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
	}, nil
}
