package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsRecordsRequestsAndTransitions(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/time/clock-in", http.MethodPost, http.StatusCreated, 20*time.Millisecond)
	m.RecordTransition("clock_in", nil)
	m.RecordTransition("clock_in", errors.New("already clocked in"))
	m.RecordNotification("check_in_reminder", nil)

	body := scrape(t, m)
	assert.Contains(t, body, `shift_tracker_http_requests_total{code="201",method="POST",route="/time/clock-in"} 1`)
	assert.Contains(t, body, `shift_tracker_time_session_transitions_total{action="clock_in",outcome="ok"} 1`)
	assert.Contains(t, body, `shift_tracker_time_session_transitions_total{action="clock_in",outcome="rejected"} 1`)
	assert.True(t, strings.Contains(body, `shift_tracker_notifications_total{outcome="delivered",type="check_in_reminder"} 1`))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)
	m.RecordError("/", http.MethodGet, "NOT_FOUND")
	m.RecordTransition("clock_out", nil)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
