package ollama

import "time"

type Message struct {
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func ToolMessage(content string) Message {
	return Message{Role: RoleTool, Content: content}
}

// ChatRequest is the body of POST /api/chat. A nil Stream means "not
// specified"; the client resolves it before the request is sent.
type ChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	Stream    *bool     `json:"stream,omitempty"`
	Format    string    `json:"format,omitempty"`
	Options   *Options  `json:"options,omitempty"`
	KeepAlive string    `json:"keep_alive,omitempty"`
}

type GenerateRequest struct {
	Model     string   `json:"model"`
	Prompt    string   `json:"prompt"`
	System    string   `json:"system,omitempty"`
	Stream    *bool    `json:"stream,omitempty"`
	Images    []string `json:"images,omitempty"`
	Format    string   `json:"format,omitempty"`
	Context   []int64  `json:"context,omitempty"`
	Options   *Options `json:"options,omitempty"`
	KeepAlive string   `json:"keep_alive,omitempty"`
}

type EmbedRequest struct {
	Model     string   `json:"model"`
	Input     []string `json:"input"`
	Truncate  *bool    `json:"truncate,omitempty"`
	Options   *Options `json:"options,omitempty"`
	KeepAlive string   `json:"keep_alive,omitempty"`
}

// Timings are the performance counters the server attaches to a final
// response. They are absent on intermediate streamed chunks, hence pointers.
type Timings struct {
	TotalDuration      *int64 `json:"total_duration,omitempty"`
	LoadDuration       *int64 `json:"load_duration,omitempty"`
	PromptEvalCount    *int   `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration *int64 `json:"prompt_eval_duration,omitempty"`
	EvalCount          *int   `json:"eval_count,omitempty"`
	EvalDuration       *int64 `json:"eval_duration,omitempty"`
}

// Metrics returns the counters as durations, with zero for anything absent.
func (t Timings) Metrics() Metrics {
	return Metrics{
		TotalDuration:      time.Duration(deref(t.TotalDuration)),
		LoadDuration:       time.Duration(deref(t.LoadDuration)),
		PromptEvalDuration: time.Duration(deref(t.PromptEvalDuration)),
		EvalDuration:       time.Duration(deref(t.EvalDuration)),
		PromptTokens:       deref(t.PromptEvalCount),
		CompletionTokens:   deref(t.EvalCount),
	}
}

type Metrics struct {
	TotalDuration      time.Duration
	LoadDuration       time.Duration
	PromptEvalDuration time.Duration
	EvalDuration       time.Duration
	PromptTokens       int
	CompletionTokens   int
}

func (m Metrics) TokensPerSecond() float64 {
	if m.EvalDuration <= 0 {
		return 0
	}
	return float64(m.CompletionTokens) / m.EvalDuration.Seconds()
}

type ChatResponse struct {
	Model      string  `json:"model"`
	CreatedAt  string  `json:"created_at,omitempty"`
	Message    Message `json:"message"`
	Done       bool    `json:"done"`
	DoneReason string  `json:"done_reason,omitempty"`
	Timings
}

func (r ChatResponse) finished() bool {
	return r.Done
}

type GenerateResponse struct {
	Model      string  `json:"model"`
	CreatedAt  string  `json:"created_at,omitempty"`
	Response   string  `json:"response"`
	Done       bool    `json:"done"`
	DoneReason string  `json:"done_reason,omitempty"`
	Context    []int64 `json:"context,omitempty"`
	Timings
}

func (r GenerateResponse) finished() bool {
	return r.Done
}

type EmbedResponse struct {
	Model           string      `json:"model"`
	Embeddings      [][]float64 `json:"embeddings"`
	TotalDuration   *int64      `json:"total_duration,omitempty"`
	LoadDuration    *int64      `json:"load_duration,omitempty"`
	PromptEvalCount *int        `json:"prompt_eval_count,omitempty"`
}

// ModelInfo is returned both as an entry of /api/tags and by /api/show; each
// endpoint fills a different subset of fields.
type ModelInfo struct {
	Name       string         `json:"name,omitempty"`
	Model      string         `json:"model,omitempty"`
	ModifiedAt string         `json:"modified_at,omitempty"`
	Size       int64          `json:"size,omitempty"`
	Digest     string         `json:"digest,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	License    string         `json:"license,omitempty"`
	Modelfile  string         `json:"modelfile,omitempty"`
	Parameters string         `json:"parameters,omitempty"`
	Template   string         `json:"template,omitempty"`
}

type ModelList struct {
	Models []ModelInfo `json:"models"`
}

type ShowRequest struct {
	Model string `json:"model"`
}

type PullRequest struct {
	Model  string `json:"model"`
	Stream *bool  `json:"stream,omitempty"`
}

type PullResponse struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

func (r PullResponse) finished() bool {
	return r.Status == "success"
}

type DeleteRequest struct {
	Model string `json:"model"`
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
