package ollama

import (
	"log/slog"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 60 * time.Second
)

// Settings is read once when a Client is built and never consulted again.
type Settings struct {
	BaseURL string        `validate:"required,url"`
	Model   string        `validate:"required"`
	Timeout time.Duration `validate:"gte=0"`
	Options *Options
}

func DefaultSettings() Settings {
	return Settings{
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
		Timeout: DefaultTimeout,
	}
}

type ClientOption func(*Client) error

// WithHTTPClient sets the transport used for every call. A nil doer keeps
// the default logging/tracing client.
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) error {
		if doer != nil {
			c.doer = doer
		}
		return nil
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) error {
		c.defaultHeaders = make(map[string]string, len(headers))
		for key, value := range headers {
			c.defaultHeaders[key] = value
		}
		return nil
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout < 0 {
			timeout = 0
		}
		c.timeout = timeout
		return nil
	}
}
