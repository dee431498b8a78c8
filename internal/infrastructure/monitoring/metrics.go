package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and
// records nothing, so components can run without instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Dispatcher metrics
	Dispatches       *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec

	// Registry and window stack metrics
	AppsTotal     prometheus.Gauge
	AppsOpen      prometheus.Gauge
	AppsInstalled prometheus.Gauge
	AppEvents     *prometheus.CounterVec

	// Menu metrics
	MenuOpens *prometheus.CounterVec

	// Storage metrics
	StorageLoads  *prometheus.CounterVec
	StorageWrites *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Widget metrics
	WidgetRefreshes *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	TotalDispatches   int64   `json:"total_dispatches"`
	ActiveConnections int64   `json:"active_connections"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deskd_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deskd_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deskd_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Dispatcher metrics
		Dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_dispatch_total",
				Help: "Total number of dispatched intents",
			},
			[]string{"kind", "result"},
		),
		DispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deskd_dispatch_duration_seconds",
				Help:    "Intent dispatch duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"kind"},
		),

		// Registry metrics
		AppsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "deskd_apps",
			Help: "Number of apps in the registry",
		}),
		AppsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "deskd_apps_open",
			Help: "Number of apps with an open window",
		}),
		AppsInstalled: factory.NewGauge(prometheus.GaugeOpts{
			Name: "deskd_apps_installed",
			Help: "Number of user-installed apps",
		}),
		AppEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_app_events_total",
				Help: "Window stack and registry events",
			},
			[]string{"event"},
		),

		// Menu metrics
		MenuOpens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_menu_opens_total",
				Help: "Total number of context menus shown",
			},
			[]string{"menu"},
		),

		// Storage metrics
		StorageLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_storage_loads_total",
				Help: "Record loads by outcome",
			},
			[]string{"key", "outcome"},
		),
		StorageWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_storage_writes_total",
				Help: "Record writes by status",
			},
			[]string{"key", "status"},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "deskd_ws_connections",
			Help: "Number of active WebSocket connections",
		}),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// Widget metrics
		WidgetRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskd_widget_refreshes_total",
				Help: "Widget refresh attempts by status",
			},
			[]string{"widget", "status"},
		),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "deskd_uptime_seconds",
		Help: "Service uptime in seconds",
	}, func() float64 {
		return time.Since(m.startTime).Seconds()
	})

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordDispatch records one dispatched intent
func (m *Metrics) RecordDispatch(kind, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Dispatches.WithLabelValues(kind, result).Inc()
	m.DispatchDuration.WithLabelValues(kind).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalDispatches++
	m.mu.Unlock()
}

// RecordAppEvent counts a registry or window stack event
func (m *Metrics) RecordAppEvent(event string) {
	if m == nil {
		return
	}
	m.AppEvents.WithLabelValues(event).Inc()
}

// SetAppGauges sets the registry gauges
func (m *Metrics) SetAppGauges(total, open, installed int) {
	if m == nil {
		return
	}
	m.AppsTotal.Set(float64(total))
	m.AppsOpen.Set(float64(open))
	m.AppsInstalled.Set(float64(installed))
}

// RecordMenuOpen counts a shown menu
func (m *Metrics) RecordMenuOpen(menu string) {
	if m == nil {
		return
	}
	m.MenuOpens.WithLabelValues(menu).Inc()
}

// RecordStorageLoad counts a record load; outcome is hit, miss, corrupt or error
func (m *Metrics) RecordStorageLoad(key, outcome string) {
	if m == nil {
		return
	}
	m.StorageLoads.WithLabelValues(key, outcome).Inc()
}

// RecordStorageWrite counts a record write
func (m *Metrics) RecordStorageWrite(key string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StorageWrites.WithLabelValues(key, status).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// RecordWidgetRefresh counts a widget refresh attempt
func (m *Metrics) RecordWidgetRefresh(widget, status string) {
	if m == nil {
		return
	}
	m.WidgetRefreshes.WithLabelValues(widget, status).Inc()
}

// Snapshot returns current values for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
