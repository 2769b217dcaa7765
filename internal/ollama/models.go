package ollama

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

func (c *Client) ListModels(ctx context.Context) (*ModelList, error) {
	start := time.Now()

	var list ModelList
	err := c.call(ctx, opList, http.MethodGet, pathTags, nil, &list)
	c.observe(opList, "", start, err)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) ShowModel(ctx context.Context, name string) (*ModelInfo, error) {
	start := time.Now()

	var info ModelInfo
	err := c.call(ctx, opShow, http.MethodPost, pathShow, ShowRequest{Model: name}, &info)
	c.observe(opShow, name, start, err)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// PullModel downloads a model and blocks until the server reports the pull
// finished. Progress is not reported; see PullModelStream.
func (c *Client) PullModel(ctx context.Context, name string) error {
	start := time.Now()

	req := PullRequest{Model: name, Stream: Ptr(false)}
	err := c.call(ctx, opPull, http.MethodPost, pathPull, req, nil)
	c.observe(opPull, name, start, err)
	return err
}

// PullModelStream downloads a model and reports progress as it arrives. The
// stream ends with the element whose status is "success".
func (c *Client) PullModelStream(ctx context.Context, name string) (*Stream[PullResponse], error) {
	start := time.Now()
	op := opPull + "_stream"

	req := PullRequest{Model: name, Stream: forceStream()}
	s, err := openStream[PullResponse](ctx, c, op, pathPull, req)
	if err != nil {
		c.observe(op, name, start, err)
		return nil, err
	}

	s.onFinish = func(_ PullResponse, err error) {
		c.observe(op, name, start, err)
	}
	return s, nil
}

// DeleteModel removes a model. Only the status code decides success.
func (c *Client) DeleteModel(ctx context.Context, name string) error {
	start := time.Now()

	err := c.call(ctx, opDelete, http.MethodDelete, pathDelete, DeleteRequest{Model: name}, nil)
	c.observe(opDelete, name, start, err)
	return err
}

// IsAvailable reports whether the server answers a probe with a 2xx status.
// It never returns an error; every failure reads as unavailable.
func (c *Client) IsAvailable(ctx context.Context) bool {
	err := c.call(ctx, opProbe, http.MethodGet, pathRoot, nil, nil)
	if err != nil {
		c.logger.Debug("ollama server unavailable",
			slog.String("url", c.baseURL),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}
