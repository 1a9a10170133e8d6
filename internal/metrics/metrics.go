package metrics

import (
	"net/http"
	"strconv"
	"time"

	"plant_monitor/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "plant_monitor"

// Metrics owns its registry so several instances (tests) never collide.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	wsSessions        prometheus.Gauge
	wsQueries         *prometheus.CounterVec
	fixtureEntities   *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		wsSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_sessions_active",
			Help:      "Interactive department view sessions currently open.",
		}),
		wsQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_queries_total",
			Help:      "View queries received over websocket sessions by outcome.",
		}, []string{"outcome"}),
		fixtureEntities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fixture_entities",
			Help:      "Entities held by the loaded fixture snapshot.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.wsSessions,
		m.wsQueries,
		m.fixtureEntities,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.wsSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.wsSessions.Dec()
}

// SessionQuery counts one websocket view query; ok is false for rejected queries.
func (m *Metrics) SessionQuery(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "rejected"
	}
	m.wsQueries.WithLabelValues(outcome).Inc()
}

// SetFixture publishes the entity counts of the loaded snapshot.
func (m *Metrics) SetFixture(st repository.Stats) {
	if m == nil {
		return
	}
	m.fixtureEntities.WithLabelValues("sites").Set(float64(st.Sites))
	m.fixtureEntities.WithLabelValues("departments").Set(float64(st.Departments))
	m.fixtureEntities.WithLabelValues("machines").Set(float64(st.Machines))
	m.fixtureEntities.WithLabelValues("alerts").Set(float64(st.Alerts))
}
