package persistence

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doughjo/internal/models"
)

func testRecord() models.ShiftRecord {
	return models.ShiftRecord{
		ShiftDuration: 300,
		Orders: []models.Order{
			{ID: 1, Timestamp: 1717264800000, Items: []models.OrderLine{
				{Name: "Margherita", Price: 9.5, SecondsForOrder: 180},
			}},
		},
		StartTime: 1717264740000,
		EndTime:   1717265040000,
	}
}

func TestSave(t *testing.T) {
	var received models.ShiftRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shift/complete", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message": "Shift saved", "shiftId": 1}`))
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Save(testRecord()))
	assert.Equal(t, 300, received.ShiftDuration)
	require.Len(t, received.Orders, 1)
	assert.Equal(t, 1, received.Orders[0].ID)
}

func TestSaveServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Missing required fields"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Save(testRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required fields")
}

func TestSaveGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Save(testRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSaveTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	assert.Error(t, NewClient(srv.URL).Save(testRecord()))
}

func TestRecentKeepsLastThreeMostRecentFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shift/history", r.URL.Path)

		// Five stored shifts in insertion order.
		shifts := make([]models.ShiftRecord, 0, 5)
		for i := 1; i <= 5; i++ {
			shifts = append(shifts, models.ShiftRecord{
				ShiftDuration: i * 60,
				Orders:        []models.Order{},
				StartTime:     int64(i * 1000),
				EndTime:       int64(i*1000 + 60),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"shifts": shifts})
	}))
	defer srv.Close()

	recent, err := NewClient(srv.URL).Recent(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, int64(5000), recent[0].StartTime)
	assert.Equal(t, int64(4000), recent[1].StartTime)
	assert.Equal(t, int64(3000), recent[2].StartTime)
}

func TestRecentFewerThanLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"shifts": [{"shiftDuration": 60, "orders": [], "startTime": 1000, "endTime": 1060}]}`)
	}))
	defer srv.Close()

	recent, err := NewClient(srv.URL).Recent(3)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 60, recent[0].ShiftDuration)
}

func TestRecentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Recent(3)
	assert.Error(t, err)
}
