package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doughjo/internal/models"
	"doughjo/internal/monitoring"
	"doughjo/internal/shift"
	"doughjo/internal/timer"
)

type stubCatalog struct {
	products []models.Product
}

func (s stubCatalog) Fetch() ([]models.Product, error) {
	return s.products, nil
}

type stubStore struct{}

func (stubStore) Save(models.ShiftRecord) error {
	return nil
}

func (stubStore) Recent(int) ([]models.ShiftRecord, error) {
	return nil, nil
}

func setupTestServer(t *testing.T) *ShiftServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := timer.NewManual(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))
	machine := shift.NewMachine(
		clock,
		rand.New(rand.NewSource(1)),
		stubCatalog{products: []models.Product{{Name: "Margherita", Price: 9.5, SecondsForOrder: 180}}},
		stubStore{},
		monitoring.NewMonitor(),
	)
	return NewShiftServer(gin.New(), machine, monitoring.NewMonitor())
}

func postJSON(t *testing.T, server *ShiftServer, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)
	return w
}

func TestHandleStartShift(t *testing.T) {
	server := setupTestServer(t)

	w := postJSON(t, server, "/api/shift/start", `{"minutes": "5"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var snap shift.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, models.ShiftActive, snap.Status)
	assert.Equal(t, 300, snap.ShiftDuration)
	assert.Equal(t, 300, snap.TimeLeft)
}

func TestHandleStartShiftRejectsBadInput(t *testing.T) {
	server := setupTestServer(t)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"non-numeric duration", `{"minutes": "abc"}`, http.StatusBadRequest},
		{"zero duration", `{"minutes": "0"}`, http.StatusBadRequest},
		{"negative duration", `{"minutes": "-5"}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, server, "/api/shift/start", tc.body)
			assert.Equal(t, tc.code, w.Code)

			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response["error"])
		})
	}

	// None of the rejected requests started a shift.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/shift", nil)
	server.Router().ServeHTTP(w, req)

	var snap shift.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, models.ShiftNotStarted, snap.Status)
}

func TestHandleStartShiftConflict(t *testing.T) {
	server := setupTestServer(t)

	w := postJSON(t, server, "/api/shift/start", `{"minutes": "5"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, server, "/api/shift/start", `{"minutes": "5"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleEndShift(t *testing.T) {
	server := setupTestServer(t)

	w := postJSON(t, server, "/api/shift/end", ``)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, postJSON(t, server, "/api/shift/start", `{"minutes": "5"}`).Code)

	w = postJSON(t, server, "/api/shift/end", ``)
	assert.Equal(t, http.StatusOK, w.Code)

	var snap shift.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, models.ShiftEnded, snap.Status)
}

func TestHandleResetShift(t *testing.T) {
	server := setupTestServer(t)

	require.Equal(t, http.StatusOK, postJSON(t, server, "/api/shift/start", `{"minutes": "5"}`).Code)
	require.Equal(t, http.StatusOK, postJSON(t, server, "/api/shift/end", ``).Code)

	w := postJSON(t, server, "/api/shift/reset", ``)
	assert.Equal(t, http.StatusOK, w.Code)

	var snap shift.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, models.ShiftNotStarted, snap.Status)
}

func TestHandleCompleteOrder(t *testing.T) {
	server := setupTestServer(t)

	require.Equal(t, http.StatusOK, postJSON(t, server, "/api/shift/start", `{"minutes": "5"}`).Code)

	// Unknown ids succeed without effect.
	w := postJSON(t, server, "/api/shift/orders/99/complete", ``)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, server, "/api/shift/orders/abc/complete", ``)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleShiftState(t *testing.T) {
	server := setupTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/shift", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var snap shift.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, models.ShiftNotStarted, snap.Status)
	assert.Equal(t, models.SaveIdle, snap.SaveStatus.State)
}

func TestHandleHealth(t *testing.T) {
	server := setupTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleMetrics(t *testing.T) {
	server := setupTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/metrics", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var metrics map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	assert.Contains(t, metrics, "uptime_seconds")
}
