package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Generate sends a completion request and returns one complete response,
// following the same stream rules as Chat.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	req = c.prepareGenerate(req, defaultStream(req.Stream))
	start := time.Now()

	var (
		resp *GenerateResponse
		err  error
	)
	if *req.Stream {
		resp, err = c.foldGenerate(ctx, req)
	} else {
		resp = new(GenerateResponse)
		err = c.call(ctx, opGenerate, http.MethodPost, pathGenerate, req, resp)
	}

	c.observe(opGenerate, req.Model, start, err)
	if err != nil {
		return nil, err
	}

	recordTokens(opGenerate, req.Model, resp.Timings)
	return resp, nil
}

func (c *Client) foldGenerate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	stream, err := openStream[GenerateResponse](ctx, c, opGenerate, pathGenerate, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var text strings.Builder
	var last GenerateResponse
	for stream.Next() {
		last = stream.Current()
		text.WriteString(last.Response)
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	last.Response = text.String()
	return &last, nil
}
