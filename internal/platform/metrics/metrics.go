package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feeding_tracker"

// Metrics agrupa los collectors en un registry propio (no el global),
// así cada router/test tiene el suyo.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	subjectsAdded    prometheus.Counter
	subjectsRemoved  prometheus.Counter
	feedingsRecorded prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		subjectsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subjects_added_total",
			Help:      "Subjects added to the tracker.",
		}),
		subjectsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subjects_removed_total",
			Help:      "Subjects removed from the tracker.",
		}),
		feedingsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedings_recorded_total",
			Help:      "Feedings confirmed by an operator.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.subjectsAdded,
		m.subjectsRemoved,
		m.feedingsRecorded,
	)

	return m
}

// RegisterTrackerGauges publica gauges que se calculan al momento del scrape.
func (m *Metrics) RegisterTrackerGauges(subjects func() float64, due func() float64) {
	if m == nil {
		return
	}
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subjects",
			Help:      "Subjects currently tracked.",
		}, subjects),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subjects_due",
			Help:      "Subjects whose feeding interval has elapsed.",
		}, due),
	)
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) SubjectAdded() {
	if m != nil {
		m.subjectsAdded.Inc()
	}
}

func (m *Metrics) SubjectRemoved() {
	if m != nil {
		m.subjectsRemoved.Inc()
	}
}

func (m *Metrics) FeedingRecorded() {
	if m != nil {
		m.feedingsRecorded.Inc()
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
