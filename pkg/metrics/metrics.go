package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	appointmentsCreated *prometheus.CounterVec
	appointmentEvents   *prometheus.CounterVec
	schedulingConflicts *prometheus.CounterVec
	emptyAvailability   prometheus.Counter
}

// New создает коллектор и регистрирует его в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает коллектор и регистрирует его в указанном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_appointments_created_total",
			Help:        "Appointments created, by initial status",
			ConstLabels: labels,
		}, []string{"status", "source"}),
		appointmentEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_appointment_events_total",
			Help:        "Lifecycle events emitted, by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		schedulingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_conflicts_total",
			Help:        "Rejected or overridden slot conflicts, by operation",
			ConstLabels: labels,
		}, []string{"operation"}),
		emptyAvailability: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "scheduling_empty_availability_total",
			Help:        "Availability queries that returned no start times",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.appointmentsCreated,
		m.appointmentEvents,
		m.schedulingConflicts,
		m.emptyAvailability,
	)

	return m
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// AppointmentCreated учитывает созданную запись с ее начальным статусом
func (m *Metrics) AppointmentCreated(status, source string) {
	if m == nil {
		return
	}
	m.appointmentsCreated.WithLabelValues(status, source).Inc()
}

// AppointmentEvent учитывает событие жизненного цикла
func (m *Metrics) AppointmentEvent(kind string) {
	if m == nil {
		return
	}
	m.appointmentEvents.WithLabelValues(kind).Inc()
}

// SchedulingConflict учитывает конфликт слота
func (m *Metrics) SchedulingConflict(operation string) {
	if m == nil {
		return
	}
	m.schedulingConflicts.WithLabelValues(operation).Inc()
}

// EmptyAvailability учитывает пустой результат поиска слотов
func (m *Metrics) EmptyAvailability() {
	if m == nil {
		return
	}
	m.emptyAvailability.Inc()
}
