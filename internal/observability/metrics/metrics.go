package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "ctf_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	maintenanceProbes       *prometheus.CounterVec
	maintenanceProbeLatency prometheus.Histogram
	maintenanceCacheHits    prometheus.Counter
	maintenanceActive       *prometheus.GaugeVec

	selectionResolutions *prometheus.CounterVec
)

// Init registers service metrics with reg, or the default registerer when
// reg is nil. Only the first call has an effect.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method and status",
			},
			[]string{"method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)

		maintenanceProbes = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "maintenance_probes_total",
				Help: "Total maintenance probes by outcome",
			},
			[]string{"outcome"},
		)
		maintenanceProbeLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "maintenance_probe_duration_seconds",
				Help:    "Maintenance probe latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		maintenanceCacheHits = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "maintenance_cache_hits_total",
				Help: "Maintenance checks answered from cache",
			},
		)
		maintenanceActive = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "maintenance_active",
				Help: "1 when maintenance mode is active, by error type",
			},
			[]string{"error_type"},
		)

		selectionResolutions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "event_selection_resolutions_total",
				Help: "Resolved event selections by kind",
			},
			[]string{"kind"},
		)

		reg.MustRegister(
			httpRequests,
			httpLatency,
			maintenanceProbes,
			maintenanceProbeLatency,
			maintenanceCacheHits,
			maintenanceActive,
			selectionResolutions,
		)
	})
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method string, status int, duration time.Duration) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method).Observe(duration.Seconds())
	}
}

// ObserveMaintenanceProbe records a probe outcome and its latency.
func ObserveMaintenanceProbe(outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	if maintenanceProbes != nil {
		maintenanceProbes.WithLabelValues(outcome).Inc()
	}
	if maintenanceProbeLatency != nil {
		maintenanceProbeLatency.Observe(duration.Seconds())
	}
}

// IncMaintenanceCacheHit counts a check served from cache.
func IncMaintenanceCacheHit() {
	if maintenanceCacheHits != nil {
		maintenanceCacheHits.Inc()
	}
}

// SetMaintenanceActive publishes the latest gate decision.
func SetMaintenanceActive(active bool, errorType string) {
	if maintenanceActive == nil {
		return
	}
	maintenanceActive.Reset()
	if !active {
		maintenanceActive.WithLabelValues("none").Set(0)
		return
	}
	if errorType == "" {
		errorType = "unknown"
	}
	maintenanceActive.WithLabelValues(errorType).Set(1)
}

// IncSelectionResolution counts a resolved selection by kind.
func IncSelectionResolution(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	if selectionResolutions != nil {
		selectionResolutions.WithLabelValues(kind).Inc()
	}
}
