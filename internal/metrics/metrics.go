package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ollama_http_requests_total",
		Help: "Total number of outgoing HTTP requests",
	}, []string{"client", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ollama_http_request_duration_seconds",
		Help:    "Time until response headers for outgoing HTTP requests",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"client", "method"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ollama_request_duration_seconds",
		Help:    "Ollama operation duration in seconds, including streamed bodies",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"operation", "model", "outcome"})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ollama_requests_total",
		Help: "Total number of Ollama operations",
	}, []string{"operation", "model"})

	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ollama_errors_total",
		Help: "Total number of failed Ollama operations",
	}, []string{"operation", "kind"})

	TokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ollama_tokens_total",
		Help: "Total number of tokens reported by the server",
	}, []string{"operation", "model", "type"})

	StreamChunksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ollama_stream_chunks_total",
		Help: "Total number of streamed chunks decoded",
	}, []string{"operation"})
)
