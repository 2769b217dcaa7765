package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PauloHFS/gollama/internal/metrics"
)

type streamChunk interface {
	finished() bool
}

// Stream is a pull-based sequence of decoded NDJSON documents. Each call to
// Next decodes one document; nothing is read ahead. The sequence ends after
// the first element whose finished() reports true. A Stream is owned by a
// single consumer, but Close may be called from another goroutine to abort a
// blocked Next.
type Stream[T streamChunk] struct {
	op     string
	req    *http.Request
	resp   *http.Response
	dec    *json.Decoder
	cancel context.CancelFunc
	logger *slog.Logger

	current T
	err     error
	done    bool
	chunks  int

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error

	onFinish func(last T, err error)
}

// Next advances to the next element. It returns false once the final element
// has been consumed, after Close, or after a failure reported by Err.
func (s *Stream[T]) Next() bool {
	if s.done || s.err != nil || s.closed.Load() {
		return false
	}

	var raw json.RawMessage
	if err := s.dec.Decode(&raw); err != nil {
		if s.closed.Load() {
			return false
		}
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("stream ended before final chunk: %w", io.ErrUnexpectedEOF)
			s.fail(&TransportError{Op: s.op, Method: s.req.Method, URL: s.req.URL.String(), Err: err})
			return false
		}
		s.fail(classifyReadError(s.op, s.req, err))
		return false
	}

	var probe errorBody
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Error != "" {
		s.fail(&StatusError{
			Op:         s.op,
			StatusCode: s.resp.StatusCode,
			Status:     s.resp.Status,
			Message:    probe.Error,
			Body:       raw,
		})
		return false
	}

	var chunk T
	if err := json.Unmarshal(raw, &chunk); err != nil {
		s.fail(&DecodeError{Op: s.op, Err: err})
		return false
	}

	s.current = chunk
	s.chunks++
	metrics.StreamChunksTotal.WithLabelValues(s.op).Inc()

	if chunk.finished() {
		s.done = true
		s.logger.Debug("ollama stream completed", slog.String("operation", s.op), slog.Int("chunks", s.chunks))
		s.release()
		if s.onFinish != nil {
			s.onFinish(chunk, nil)
		}
	}

	return true
}

// Current returns the element decoded by the last successful Next.
func (s *Stream[T]) Current() T {
	return s.current
}

// Err returns the terminal failure, if any. Closing a stream early is not a
// failure.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close cancels the request and closes the response body, which drops the
// underlying connection if the stream was not drained. It is safe to call
// more than once.
func (s *Stream[T]) Close() error {
	s.closed.Store(true)
	return s.release()
}

// All adapts the stream to a range-over-func loop. Breaking out of the loop
// closes the stream. A terminal failure is yielded once as the final pair.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.current, nil) {
				return
			}
		}
		if err := s.err; err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

func (s *Stream[T]) fail(err error) {
	s.err = err
	s.release()
	if s.onFinish != nil {
		var zero T
		s.onFinish(zero, err)
	}
}

func (s *Stream[T]) release() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.resp.Body.Close()
		s.logger.Debug("ollama stream closed",
			slog.String("operation", s.op),
			slog.Bool("early", s.closed.Load()),
		)
	})
	return s.closeErr
}

// openStream sends body to path and returns a Stream over the NDJSON
// response. The client timeout bounds only the wait for response headers;
// after that the stream lives as long as ctx.
func openStream[T streamChunk](ctx context.Context, c *Client, op, path string, body any) (*Stream[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	var timer *time.Timer
	if c.timeout > 0 {
		timer = time.AfterFunc(c.timeout, cancel)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, body, contentTypeNDJSON)
	if err != nil {
		if timer != nil {
			timer.Stop()
		}
		cancel()
		return nil, err
	}

	resp, err := c.send(op, req)
	if timer != nil && !timer.Stop() {
		if resp != nil {
			resp.Body.Close()
		}
		cancel()
		return nil, &TransportError{
			Op:     op,
			Method: req.Method,
			URL:    req.URL.String(),
			Err:    fmt.Errorf("no response headers after %s: %w", c.timeout, context.DeadlineExceeded),
		}
	}
	if err != nil {
		cancel()
		return nil, err
	}

	c.logger.Debug("ollama stream opened", slog.String("operation", op), slog.String("url", req.URL.String()))

	return &Stream[T]{
		op:     op,
		req:    req,
		resp:   resp,
		dec:    json.NewDecoder(resp.Body),
		cancel: cancel,
		logger: c.logger,
	}, nil
}

// ChatStream always sends stream:true, whatever the caller set.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest) (*Stream[ChatResponse], error) {
	req = c.prepareChat(req, forceStream())
	start := time.Now()

	s, err := openStream[ChatResponse](ctx, c, opChat+"_stream", pathChat, req)
	if err != nil {
		c.observe(opChat+"_stream", req.Model, start, err)
		return nil, err
	}

	s.onFinish = func(last ChatResponse, err error) {
		c.observe(opChat+"_stream", req.Model, start, err)
		if err == nil {
			recordTokens(opChat+"_stream", req.Model, last.Timings)
		}
	}
	return s, nil
}

// GenerateStream always sends stream:true, whatever the caller set.
func (c *Client) GenerateStream(ctx context.Context, req GenerateRequest) (*Stream[GenerateResponse], error) {
	req = c.prepareGenerate(req, forceStream())
	start := time.Now()

	s, err := openStream[GenerateResponse](ctx, c, opGenerate+"_stream", pathGenerate, req)
	if err != nil {
		c.observe(opGenerate+"_stream", req.Model, start, err)
		return nil, err
	}

	s.onFinish = func(last GenerateResponse, err error) {
		c.observe(opGenerate+"_stream", req.Model, start, err)
		if err == nil {
			recordTokens(opGenerate+"_stream", req.Model, last.Timings)
		}
	}
	return s, nil
}
