package httpclient

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/PauloHFS/gollama/internal/logging"
	"github.com/PauloHFS/gollama/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

type Client struct {
	*http.Client
	name string
}

type Config struct {
	Name string
	// Timeout is the http.Client timeout. It covers reading the body too, so
	// clients that stream long responses should leave it at zero and bound
	// calls with a context instead.
	Timeout time.Duration
	// RateLimit paces outgoing requests; zero means unlimited.
	RateLimit rate.Limit
	Burst     int
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

func New(cfg Config) *Client {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	var transport http.RoundTripper = &loggingTransport{
		RoundTripper: base,
		name:         cfg.Name,
	}

	transport = &tracingTransport{
		RoundTripper: transport,
		tracer:       otel.Tracer("github.com/PauloHFS/gollama/internal/httpclient"),
		propagator:   otel.GetTextMapPropagator(),
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		transport = &rateTransport{
			RoundTripper: transport,
			limiter:      rate.NewLimiter(cfg.RateLimit, burst),
		}
	}

	return &Client{
		Client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		name: cfg.Name,
	}
}

type loggingTransport struct {
	http.RoundTripper
	name string
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	r = r.Clone(r.Context())
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(RequestIDHeader, requestID)
	}

	ctx, event := logging.NewEventContext(r.Context())
	event.Add(
		slog.String("http_client", t.name),
		slog.String("request_id", requestID),
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
	)

	resp, err := t.RoundTripper.RoundTrip(r.WithContext(ctx))

	duration := time.Since(start)
	metrics.HTTPRequestDuration.WithLabelValues(t.name, r.Method).Observe(duration.Seconds())

	if err != nil {
		metrics.HTTPRequestsTotal.WithLabelValues(t.name, r.Method, "error").Inc()
		event.Add(
			slog.String("outcome", "error"),
			slog.String("error", err.Error()),
			slog.Float64("duration_ms", float64(duration.Milliseconds())),
		)
		logging.Get().Log(ctx, slog.LevelError, "http request failed", event.Attrs()...)
		return nil, err
	}

	metrics.HTTPRequestsTotal.WithLabelValues(t.name, r.Method, strconv.Itoa(resp.StatusCode)).Inc()
	event.Add(
		slog.Int("status", resp.StatusCode),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	level := slog.LevelInfo
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}

	logging.Get().Log(ctx, level, "http request completed", event.Attrs()...)
	return resp, nil
}

// tracingTransport starts a client span per request and ends it when the
// response body is closed, so streamed bodies are covered.
type tracingTransport struct {
	http.RoundTripper
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

func (t *tracingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(r.Context(), "HTTP "+r.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.full", r.URL.String()),
			attribute.String("server.address", r.URL.Host),
		),
	)

	r = r.Clone(ctx)
	t.propagator.Inject(ctx, propagation.HeaderCarrier(r.Header))

	resp, err := t.RoundTripper.RoundTrip(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
	}

	resp.Body = &spanBody{ReadCloser: resp.Body, span: span}
	return resp, nil
}

type spanBody struct {
	io.ReadCloser
	span trace.Span
}

func (b *spanBody) Close() error {
	err := b.ReadCloser.Close()
	b.span.End()
	return err
}

type rateTransport struct {
	http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, err
	}
	return t.RoundTripper.RoundTrip(r)
}
