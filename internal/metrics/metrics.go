// Package metrics exposes the daemon's Prometheus instrumentation for the
// RPC boundary.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "walletd_rpc_requests_total",
		Help: "RPC requests by method.",
	}, []string{"method"})

	rpcFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "walletd_rpc_failures_total",
		Help: "Failed RPC requests by method and error kind.",
	}, []string{"method", "kind"})

	rpcLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "walletd_rpc_duration_seconds",
		Help:    "RPC handling latency by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	sessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "walletd_session_transitions_total",
		Help: "Session lifecycle transitions.",
	}, []string{"transition"})
)

// ObserveRequest records one handled RPC request. kind is empty on success.
func ObserveRequest(method, kind string, seconds float64) {
	rpcRequests.WithLabelValues(method).Inc()
	rpcLatency.WithLabelValues(method).Observe(seconds)
	if kind != "" {
		rpcFailures.WithLabelValues(method, kind).Inc()
	}
}

// ObserveSessionTransition records a session lifecycle transition
// (initialize, dispose).
func ObserveSessionTransition(transition string) {
	sessionTransitions.WithLabelValues(transition).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
