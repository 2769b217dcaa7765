package ollama

import (
	"time"

	"github.com/PauloHFS/gollama/internal/metrics"
)

func (c *Client) observe(op, model string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		metrics.ErrorsTotal.WithLabelValues(op, classifyError(err)).Inc()
	}
	metrics.RequestsTotal.WithLabelValues(op, model).Inc()
	metrics.RequestDuration.WithLabelValues(op, model, outcome).Observe(time.Since(start).Seconds())
}

func recordTokens(op, model string, t Timings) {
	m := t.Metrics()
	if m.PromptTokens > 0 {
		metrics.TokensTotal.WithLabelValues(op, model, "prompt").Add(float64(m.PromptTokens))
	}
	if m.CompletionTokens > 0 {
		metrics.TokensTotal.WithLabelValues(op, model, "completion").Add(float64(m.CompletionTokens))
	}
}

func classifyError(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsTimeout(err):
		return "timeout"
	case IsNotFound(err):
		return "not_found"
	case IsStatusError(err):
		return "status"
	case IsDecodeError(err):
		return "decode"
	case IsTransportError(err):
		return "transport"
	}
	return "unknown"
}
