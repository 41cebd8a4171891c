package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.SubjectAdded()
	m.SubjectAdded()
	m.SubjectRemoved()
	m.FeedingRecorded()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.subjectsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.subjectsRemoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feedingsRecorded))
}

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest(http.MethodGet, "/dashboard", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/dashboard", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.SubjectAdded()
	m.FeedingRecorded()
	m.ObserveHTTPRequest("GET", "/", 200, time.Second)
	m.RegisterTrackerGauges(nil, nil)
}

func TestMetrics_HandlerExposesTrackerGauges(t *testing.T) {
	m := New()
	m.RegisterTrackerGauges(func() float64 { return 3 }, func() float64 { return 1 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "feeding_tracker_subjects 3"), body)
	assert.True(t, strings.Contains(body, "feeding_tracker_subjects_due 1"), body)
}
