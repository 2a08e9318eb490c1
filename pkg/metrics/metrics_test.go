package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "salon-scheduler")

	m.AppointmentCreated("scheduled", "manual")
	m.AppointmentCreated("completed", "package")
	m.AppointmentCreated("completed", "package")
	m.SchedulingConflict("reschedule")
	m.EmptyAvailability()
	m.AppointmentEvent("created")
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/services", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointmentsCreated.WithLabelValues("completed", "package")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.appointmentsCreated.WithLabelValues("scheduled", "manual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.schedulingConflicts.WithLabelValues("reschedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emptyAvailability))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/services", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.AppointmentCreated("scheduled", "manual")
		m.AppointmentEvent("updated")
		m.SchedulingConflict("create")
		m.EmptyAvailability()
		m.ObserveHTTPRequest(http.MethodPost, "/", http.StatusCreated, time.Second)
	})
}
