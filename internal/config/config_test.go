package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"OLLAMA_BASE_URL",
		"OLLAMA_MODEL",
		"OLLAMA_TIMEOUT",
		"OLLAMA_OPTIONS_FILE",
		"OLLAMA_RATE_LIMIT",
		"LOG_LEVEL",
		"OTEL_TRACES_EXPORTER",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Ollama.BaseURL != "http://localhost:11434" {
			t.Errorf("expected default base url, got %s", cfg.Ollama.BaseURL)
		}
		if cfg.Ollama.Model != "llama3.2" {
			t.Errorf("expected model llama3.2, got %s", cfg.Ollama.Model)
		}
		if cfg.Ollama.Timeout != 60*time.Second {
			t.Errorf("expected 60s timeout, got %s", cfg.Ollama.Timeout)
		}
		if cfg.Ollama.Options != nil {
			t.Errorf("expected no default options, got %+v", cfg.Ollama.Options)
		}
		if cfg.LogLevel != "info" || cfg.TracesExporter != "none" {
			t.Errorf("unexpected ambient defaults %s/%s", cfg.LogLevel, cfg.TracesExporter)
		}
	})

	t.Run("CustomValues", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OLLAMA_BASE_URL", "http://gpu-box:11434")
		t.Setenv("OLLAMA_MODEL", "qwen2.5")
		t.Setenv("OLLAMA_TIMEOUT", "5s")
		t.Setenv("OLLAMA_RATE_LIMIT", "2.5")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Ollama.BaseURL != "http://gpu-box:11434" {
			t.Errorf("expected custom base url, got %s", cfg.Ollama.BaseURL)
		}
		if cfg.Ollama.Model != "qwen2.5" {
			t.Errorf("expected model qwen2.5, got %s", cfg.Ollama.Model)
		}
		if cfg.Ollama.Timeout != 5*time.Second {
			t.Errorf("expected 5s timeout, got %s", cfg.Ollama.Timeout)
		}
		if cfg.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", cfg.RateLimit)
		}
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OLLAMA_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Error("expected error for unparsable timeout")
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OLLAMA_BASE_URL", "not a url")
		t.Setenv("LOG_LEVEL", "loud")
		if _, err := Load(); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("OptionsFile", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "options.yaml")
		content := "temperature: 0\nnum_ctx: 4096\nstop:\n  - \"###\"\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("OLLAMA_OPTIONS_FILE", path)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		opts := cfg.Ollama.Options
		if opts == nil || opts.Temperature == nil || *opts.Temperature != 0 {
			t.Fatalf("expected explicit temperature 0, got %+v", opts)
		}
		if opts.NumCtx == nil || *opts.NumCtx != 4096 {
			t.Errorf("expected num_ctx 4096, got %v", opts.NumCtx)
		}
		if len(opts.Stop) != 1 || opts.Stop[0] != "###" {
			t.Errorf("expected stop [###], got %v", opts.Stop)
		}
		if opts.TopP != nil {
			t.Errorf("expected top_p unset, got %v", *opts.TopP)
		}
	})
}

func TestLoadOptions_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("temprature: 0.3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOptions(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadOptions_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if opts != nil {
		t.Errorf("expected nil options, got %+v", opts)
	}
}
