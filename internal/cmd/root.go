package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/PauloHFS/gollama/internal/config"
	"github.com/PauloHFS/gollama/internal/httpclient"
	"github.com/PauloHFS/gollama/internal/logging"
	"github.com/PauloHFS/gollama/internal/ollama"
	"github.com/PauloHFS/gollama/internal/tracing"
)

// app is built once per invocation by the root command's pre-run hook and
// shared by every subcommand.
type app struct {
	url   string
	model string

	cfg      *config.Config
	client   *ollama.Client
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gollama",
		Short:         "Command-line client for an Ollama server",
		Long:          "Chat, generate, embed and manage models on a local or remote Ollama server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.url, "url", "", "server base URL (overrides OLLAMA_BASE_URL)")
	root.PersistentFlags().StringVarP(&a.model, "model", "m", "", "model name (overrides OLLAMA_MODEL)")

	root.AddCommand(
		newChatCmd(a),
		newGenerateCmd(a),
		newEmbedCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newPullCmd(a),
		newDeleteCmd(a),
		newPingCmd(a),
	)

	return root
}

// Execute runs the root command until it finishes or the process receives
// SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.url != "" {
		cfg.Ollama.BaseURL = a.url
	}
	if a.model != "" {
		cfg.Ollama.Model = a.model
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Init(logging.Options{Level: level})

	shutdown, err := tracing.Init(ctx, cfg.TracesExporter, "gollama", os.Stderr)
	if err != nil {
		return err
	}

	httpClient := httpclient.New(httpclient.Config{
		Name:      "ollama",
		RateLimit: rate.Limit(cfg.RateLimit),
		Burst:     1,
	})

	client, err := ollama.New(cfg.Ollama,
		ollama.WithHTTPClient(httpClient),
		ollama.WithLogger(logging.Get()),
	)
	if err != nil {
		_ = shutdown(ctx)
		return err
	}

	a.cfg = cfg
	a.client = client
	a.shutdown = shutdown
	return nil
}

func (a *app) close() error {
	if a.shutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.shutdown(ctx)
}
