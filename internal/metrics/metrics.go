// Package metrics exposes Prometheus counters for scans and agent requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oppbot"

var registry = prometheus.NewRegistry()

var (
	upstreamRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Requests made to Hacker News and Reddit, by outcome.",
	}, []string{"source", "outcome"})

	opportunitiesFound = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "opportunities_found_total",
		Help:      "Opportunities yielded by the extractors.",
	}, []string{"source", "type"})

	agentRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_requests_total",
		Help:      "Agent queries processed, by action and result.",
	}, []string{"action", "success"})

	scanDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scan_duration_seconds",
		Help:      "Wall time of a full source scan.",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"source"})
)

func RecordUpstream(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamRequests.WithLabelValues(source, outcome).Inc()
}

func RecordOpportunity(source, typ string) {
	opportunitiesFound.WithLabelValues(source, typ).Inc()
}

func RecordAgentRequest(action string, success bool) {
	agentRequests.WithLabelValues(action, strconv.FormatBool(success)).Inc()
}

// ObserveScan returns a func that records the elapsed scan time when called.
func ObserveScan(source string) func() {
	start := time.Now()
	return func() {
		scanDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
