package ollama

import (
	"context"
	"net/http"
	"time"
)

func (c *Client) Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error) {
	req = c.prepareEmbed(req)
	start := time.Now()

	var resp EmbedResponse
	err := c.call(ctx, opEmbed, http.MethodPost, pathEmbed, req, &resp)
	c.observe(opEmbed, req.Model, start, err)
	if err != nil {
		return nil, err
	}

	if resp.PromptEvalCount != nil {
		recordTokens(opEmbed, req.Model, Timings{PromptEvalCount: resp.PromptEvalCount})
	}
	return &resp, nil
}
