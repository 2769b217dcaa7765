package ollama

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestOptions_OmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(Options{Temperature: Ptr(0.7)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if string(data) != `{"temperature":0.7}` {
		t.Errorf("expected only temperature, got %s", data)
	}
}

func TestOptions_KeepsExplicitZero(t *testing.T) {
	data, err := json.Marshal(Options{Temperature: Ptr(0.0), Seed: Ptr(0)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if string(data) != `{"temperature":0,"seed":0}` {
		t.Errorf("expected explicit zeros on the wire, got %s", data)
	}
}

func TestOptions_WireNames(t *testing.T) {
	opts := Options{
		TopP:             Ptr(0.9),
		TopK:             Ptr(40),
		NumPredict:       Ptr(128),
		RepeatPenalty:    Ptr(1.1),
		PresencePenalty:  Ptr(0.1),
		FrequencyPenalty: Ptr(0.2),
		NumCtx:           Ptr(2048),
		NumGPU:           Ptr(1),
		NumThread:        Ptr(8),
		Stop:             []string{"\n"},
	}

	data, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, key := range []string{
		`"top_p"`, `"top_k"`, `"num_predict"`, `"repeat_penalty"`, `"presence_penalty"`,
		`"frequency_penalty"`, `"num_ctx"`, `"num_gpu"`, `"num_thread"`, `"stop"`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected key %s in %s", key, data)
		}
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("expected no null values, got %s", data)
	}
}

func TestChatRequest_Serialization(t *testing.T) {
	req := ChatRequest{
		Model:     "m",
		Messages:  []Message{UserMessage("hi")},
		KeepAlive: "5m",
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := `{"model":"m","messages":[{"role":"user","content":"hi"}],"keep_alive":"5m"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestRole_RoundTrip(t *testing.T) {
	for _, role := range []Role{RoleSystem, RoleUser, RoleAssistant, RoleTool} {
		t.Run(string(role), func(t *testing.T) {
			data, err := json.Marshal(Message{Role: role, Content: "x"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if msg.Role != role {
				t.Errorf("expected role %s, got %s", role, msg.Role)
			}
		})
	}
}

func TestRole_RejectsUnknownTag(t *testing.T) {
	tests := []string{`"moderator"`, `"User"`, `""`}

	for _, tag := range tests {
		t.Run(tag, func(t *testing.T) {
			var msg Message
			err := json.Unmarshal([]byte(`{"role":`+tag+`,"content":"x"}`), &msg)
			if !errors.Is(err, ErrUnknownRole) {
				t.Errorf("expected ErrUnknownRole, got %v", err)
			}
		})
	}
}

func TestRole_MarshalRejectsUnknown(t *testing.T) {
	if _, err := json.Marshal(Message{Role: Role("moderator")}); err == nil {
		t.Error("expected error marshaling an unknown role")
	}
}

func TestOptions_Merge(t *testing.T) {
	defaults := &Options{Temperature: Ptr(0.2), NumCtx: Ptr(4096), Stop: []string{"###"}}
	own := &Options{Temperature: Ptr(0.9)}

	merged := own.Merge(defaults)

	if *merged.Temperature != 0.9 {
		t.Errorf("expected caller temperature to win, got %v", *merged.Temperature)
	}
	if merged.NumCtx == nil || *merged.NumCtx != 4096 {
		t.Errorf("expected default num_ctx, got %v", merged.NumCtx)
	}
	if merged.TopP != nil {
		t.Errorf("expected top_p to stay unset, got %v", *merged.TopP)
	}

	merged.Stop[0] = "changed"
	*merged.NumCtx = 1
	if defaults.Stop[0] != "###" || *defaults.NumCtx != 4096 {
		t.Error("expected defaults to be untouched by changes to the merged value")
	}
	if own.NumCtx != nil {
		t.Error("expected caller options to be untouched")
	}

	var none *Options
	if none.Merge(nil) != nil {
		t.Error("expected nil when both sides are nil")
	}
}

func TestTimings_Metrics(t *testing.T) {
	var resp ChatResponse
	body := `{"model":"m","message":{"role":"assistant","content":""},"done":true,
		"total_duration":3000000000,"eval_count":20,"eval_duration":2000000000,"prompt_eval_count":5}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	m := resp.Metrics()
	if m.CompletionTokens != 20 || m.PromptTokens != 5 {
		t.Errorf("unexpected token counts %+v", m)
	}
	if got := m.TokensPerSecond(); got != 10 {
		t.Errorf("expected 10 tokens/s, got %v", got)
	}

	var partial ChatResponse
	if err := json.Unmarshal([]byte(`{"model":"m","message":{"role":"assistant","content":"Hi"},"done":false}`), &partial); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if partial.EvalCount != nil || partial.TotalDuration != nil {
		t.Error("expected counters absent on intermediate chunks")
	}
	if partial.Metrics().TokensPerSecond() != 0 {
		t.Error("expected zero rate without counters")
	}
}
