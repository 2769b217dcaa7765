package ollama

// The prepare* helpers derive the request that actually goes on the wire.
// The caller's value is received by copy and every pointer the client
// changes is replaced, never written through, so a request template shared
// between goroutines is never altered.

func (c *Client) prepareChat(req ChatRequest, stream *bool) ChatRequest {
	req.Model = c.modelOr(req.Model)
	req.Options = req.Options.Merge(c.options)
	req.Stream = stream
	return req
}

func (c *Client) prepareGenerate(req GenerateRequest, stream *bool) GenerateRequest {
	req.Model = c.modelOr(req.Model)
	req.Options = req.Options.Merge(c.options)
	req.Stream = stream
	return req
}

func (c *Client) prepareEmbed(req EmbedRequest) EmbedRequest {
	req.Model = c.modelOr(req.Model)
	req.Options = req.Options.Merge(c.options)
	return req
}

func (c *Client) modelOr(model string) string {
	if model == "" {
		return c.model
	}
	return model
}

// defaultStream keeps an explicit caller value and falls back to false.
func defaultStream(flag *bool) *bool {
	if flag != nil {
		return Ptr(*flag)
	}
	return Ptr(false)
}

// forceStream ignores whatever the caller set.
func forceStream() *bool {
	return Ptr(true)
}
