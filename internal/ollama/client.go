package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PauloHFS/gollama/internal/httpclient"
	"github.com/PauloHFS/gollama/internal/logging"
)

// Doer issues an already-built HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	pathRoot     = "/"
	pathChat     = "/api/chat"
	pathGenerate = "/api/generate"
	pathEmbed    = "/api/embed"
	pathTags     = "/api/tags"
	pathShow     = "/api/show"
	pathPull     = "/api/pull"
	pathDelete   = "/api/delete"
)

const (
	opChat     = "chat"
	opGenerate = "generate"
	opEmbed    = "embed"
	opList     = "list"
	opShow     = "show"
	opPull     = "pull"
	opDelete   = "delete"
	opProbe    = "probe"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeNDJSON = "application/x-ndjson"
)

// Client talks to an Ollama server. It holds no per-call state and is safe
// for concurrent use as long as the Doer is.
type Client struct {
	baseURL        string
	model          string
	timeout        time.Duration
	options        *Options
	doer           Doer
	logger         *slog.Logger
	defaultHeaders map[string]string
}

func New(settings Settings, opts ...ClientOption) (*Client, error) {
	baseURL, err := normalizeBaseURL(settings.BaseURL)
	if err != nil {
		return nil, err
	}

	model := settings.Model
	if model == "" {
		model = DefaultModel
	}

	timeout := settings.Timeout
	if timeout < 0 {
		timeout = 0
	}

	c := &Client{
		baseURL: baseURL,
		model:   model,
		timeout: timeout,
		options: settings.Options.Merge(nil),
		logger:  logging.Get(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.doer == nil {
		c.doer = httpclient.New(httpclient.Config{Name: "ollama"})
	}

	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return DefaultBaseURL, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidBaseURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}

	return strings.TrimRight(raw, "/"), nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, accept string) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set("Accept", accept)

	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}

	return req, nil
}

// send issues req and turns transport failures and non-2xx statuses into
// typed errors. On success the caller owns resp.Body.
func (c *Client) send(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Method: req.Method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		statusErr := parseStatusError(op, resp)
		c.logger.Warn("ollama request rejected",
			slog.String("operation", op),
			slog.Int("status", resp.StatusCode),
			slog.String("error", statusErr.Error()),
		)
		return nil, statusErr
	}

	return resp, nil
}

// call performs one request/response exchange. A nil out discards the body.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, body, contentTypeJSON)
	if err != nil {
		return err
	}

	resp, err := c.send(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return classifyReadError(op, req, err)
	}

	return nil
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}
