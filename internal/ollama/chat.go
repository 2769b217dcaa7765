package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Chat sends a chat request and returns one complete response. Stream
// defaults to false when unset. An explicit stream:true is sent as is and the
// streamed reply is collapsed into a single response.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req = c.prepareChat(req, defaultStream(req.Stream))
	start := time.Now()

	var (
		resp *ChatResponse
		err  error
	)
	if *req.Stream {
		resp, err = c.foldChat(ctx, req)
	} else {
		resp = new(ChatResponse)
		err = c.call(ctx, opChat, http.MethodPost, pathChat, req, resp)
	}

	c.observe(opChat, req.Model, start, err)
	if err != nil {
		return nil, err
	}

	recordTokens(opChat, req.Model, resp.Timings)
	return resp, nil
}

func (c *Client) foldChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	stream, err := openStream[ChatResponse](ctx, c, opChat, pathChat, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var content strings.Builder
	var last ChatResponse
	for stream.Next() {
		last = stream.Current()
		content.WriteString(last.Message.Content)
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	last.Message.Role = RoleAssistant
	last.Message.Content = content.String()
	return &last, nil
}
