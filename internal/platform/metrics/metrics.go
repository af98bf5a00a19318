// Package metrics exposes Prometheus collectors for the ledger service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "booze_baton"

// Recorder owns a private registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	batonResolutions *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	circuitState     *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	csvRowsProcessed *prometheus.CounterVec
	finesOutstanding prometheus.Gauge
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		batonResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "baton",
			Name:      "resolutions_total",
			Help:      "Baton resolutions by resulting status.",
		}, []string{"status"}),
		providerRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Sports-data provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		providerLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Sports-data provider request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		circuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "circuit_open",
			Help:      "1 while the named circuit breaker is open or half open.",
		}, []string{"breaker"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		csvRowsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "csv",
			Name:      "import_rows_total",
			Help:      "CSV import rows by result.",
		}, []string{"result"}),
		finesOutstanding: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "unpaid_amount",
			Help:      "Total unpaid fine amount at the last stats computation.",
		}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) BatonResolved(status string) {
	if r == nil {
		return
	}
	r.batonResolutions.WithLabelValues(status).Inc()
}

func (r *Recorder) ProviderRequest(endpoint, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.providerRequests.WithLabelValues(endpoint, outcome).Inc()
	r.providerLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (r *Recorder) CircuitChanged(breaker string, open bool) {
	if r == nil {
		return
	}
	value := 0.0
	if open {
		value = 1
	}
	r.circuitState.WithLabelValues(breaker).Set(value)
}

func (r *Recorder) HTTPRequest(method, route string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) CSVRows(result string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.csvRowsProcessed.WithLabelValues(result).Add(float64(n))
}

func (r *Recorder) UnpaidAmount(amount float64) {
	if r == nil {
		return
	}
	r.finesOutstanding.Set(amount)
}
