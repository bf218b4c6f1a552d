package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "techverse"

// Metrics holds every collector the server exports. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	itemOps      *prometheus.CounterVec
	datasetLoads *prometheus.CounterVec
	datasetRows  *prometheus.GaugeVec
	graphNodes   prometheus.Histogram
	sseClients   prometheus.Gauge
	sseDelivered prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being served",
		}),
		itemOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_operations_total",
			Help:      "Item store operations by kind and outcome",
		}, []string{"op", "outcome"}),
		datasetLoads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Technology dataset load attempts by outcome",
		}, []string{"source", "outcome"}),
		datasetRows: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the loaded technology dataset",
		}, []string{"file"}),
		graphNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_projection_nodes",
			Help:      "Node count of each computed graph projection",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		sseClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sse_clients",
			Help:      "Open server-sent event streams",
		}),
		sseDelivered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sse_messages_published_total",
			Help:      "Realtime messages published",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ObserveItemOp records one item store call. outcome is "ok" or an error kind.
func (m *Metrics) ObserveItemOp(op, outcome string) {
	if m == nil {
		return
	}
	m.itemOps.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) ObserveDatasetLoad(source string, ok bool, books, techs, links int) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.datasetLoads.WithLabelValues(source, outcome).Inc()
	m.datasetRows.WithLabelValues("books").Set(float64(books))
	m.datasetRows.WithLabelValues("technologies").Set(float64(techs))
	m.datasetRows.WithLabelValues("book_tech_links").Set(float64(links))
}

func (m *Metrics) ObserveProjection(nodes int) {
	if m == nil {
		return
	}
	m.graphNodes.Observe(float64(nodes))
}

func (m *Metrics) SSEClientOpened() {
	if m == nil {
		return
	}
	m.sseClients.Inc()
}

func (m *Metrics) SSEClientClosed() {
	if m == nil {
		return
	}
	m.sseClients.Dec()
}

func (m *Metrics) SSEPublished() {
	if m == nil {
		return
	}
	m.sseDelivered.Inc()
}
