package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "poolwatch"

// Metrics holds the poller collectors on a private registry.
type Metrics struct {
	registry            *prometheus.Registry
	cycles              *prometheus.CounterVec
	stageFailures       *prometheus.CounterVec
	consecutiveFailures prometheus.Gauge
	reconciled          prometheus.Counter
	lastCycle           prometheus.Gauge
	cycleDuration       prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_cycles_total",
			Help:      "Poll cycles by result.",
		}, []string{"result"}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Failed poll stages by stage name.",
		}, []string{"stage"}),
		consecutiveFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consecutive_failures",
			Help:      "Current consecutive failed cycle count.",
		}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaderlogs_reconciled_total",
			Help:      "Blocks written to the leaderlog store by reconciliation.",
		}),
		lastCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix time the last poll cycle started.",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Poll cycle duration.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
	m.registry.MustRegister(
		m.cycles,
		m.stageFailures,
		m.consecutiveFailures,
		m.reconciled,
		m.lastCycle,
		m.cycleDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CycleStarted(at time.Time) {
	m.lastCycle.Set(float64(at.Unix()))
}

func (m *Metrics) CycleFinished(success bool, d time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.cycles.WithLabelValues(result).Inc()
	m.cycleDuration.Observe(d.Seconds())
}

func (m *Metrics) StageFailed(stage string) {
	m.stageFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) ConsecutiveFailures(n uint64) {
	m.consecutiveFailures.Set(float64(n))
}

func (m *Metrics) Reconciled(n int) {
	m.reconciled.Add(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
