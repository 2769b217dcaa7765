package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PauloHFS/gollama/internal/ollama"
)

type genFlags struct {
	noStream    bool
	system      string
	temperature float64
	format      string
	keepAlive   string
	verbose     bool
}

func (f *genFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noStream, "no-stream", false, "wait for the complete response instead of streaming it")
	cmd.Flags().StringVarP(&f.system, "system", "s", "", "system prompt")
	cmd.Flags().Float64VarP(&f.temperature, "temperature", "t", 0, "sampling temperature (server default when unset)")
	cmd.Flags().StringVar(&f.format, "format", "", `response format, e.g. "json"`)
	cmd.Flags().StringVar(&f.keepAlive, "keep-alive", "", "how long the model stays loaded, e.g. 5m")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "print timing statistics to stderr")
}

// options only carries flags the user actually set so that everything else
// falls through to the configured defaults.
func (f *genFlags) options(cmd *cobra.Command) *ollama.Options {
	if !cmd.Flags().Changed("temperature") {
		return nil
	}
	return &ollama.Options{Temperature: ollama.Ptr(f.temperature)}
}

func newChatCmd(a *app) *cobra.Command {
	f := &genFlags{}

	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Chat with a model",
		Long: `Send a single prompt and print the reply. Without a prompt, start an
interactive session that keeps the conversation history until EOF.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var history []ollama.Message
			if f.system != "" {
				history = append(history, ollama.SystemMessage(f.system))
			}

			if len(args) > 0 {
				history = append(history, ollama.UserMessage(strings.Join(args, " ")))
				_, err := a.chatTurn(cmd, f, history)
				return err
			}

			return a.chatREPL(cmd, f, history)
		},
	}

	f.register(cmd)
	return cmd
}

func (a *app) chatREPL(cmd *cobra.Command, f *genFlags, history []ollama.Message) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprint(out, ">>> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, ">>> ")
			continue
		}
		if line == "/bye" {
			return nil
		}

		history = append(history, ollama.UserMessage(line))
		reply, err := a.chatTurn(cmd, f, history)
		if err != nil {
			return err
		}
		history = append(history, reply)

		fmt.Fprint(out, ">>> ")
	}

	return scanner.Err()
}

// chatTurn sends the conversation so far, prints the reply and returns it so
// the caller can extend the history.
func (a *app) chatTurn(cmd *cobra.Command, f *genFlags, messages []ollama.Message) (ollama.Message, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	req := ollama.ChatRequest{
		Messages:  messages,
		Format:    f.format,
		Options:   f.options(cmd),
		KeepAlive: f.keepAlive,
	}

	if f.noStream {
		resp, err := a.client.Chat(ctx, req)
		if err != nil {
			return ollama.Message{}, err
		}
		fmt.Fprintln(out, resp.Message.Content)
		f.printStats(cmd.ErrOrStderr(), resp.Metrics())
		return resp.Message, nil
	}

	reply, metrics, err := streamChat(ctx, a.client, req, out)
	if err != nil {
		return ollama.Message{}, err
	}
	f.printStats(cmd.ErrOrStderr(), metrics)
	return reply, nil
}

func streamChat(ctx context.Context, client *ollama.Client, req ollama.ChatRequest, out io.Writer) (ollama.Message, ollama.Metrics, error) {
	stream, err := client.ChatStream(ctx, req)
	if err != nil {
		return ollama.Message{}, ollama.Metrics{}, err
	}
	defer stream.Close()

	var content strings.Builder
	var last ollama.ChatResponse
	for chunk, err := range stream.All() {
		if err != nil {
			fmt.Fprintln(out)
			return ollama.Message{}, ollama.Metrics{}, err
		}
		fmt.Fprint(out, chunk.Message.Content)
		content.WriteString(chunk.Message.Content)
		last = chunk
	}
	fmt.Fprintln(out)

	return ollama.AssistantMessage(content.String()), last.Metrics(), nil
}

func (f *genFlags) printStats(w io.Writer, m ollama.Metrics) {
	if !f.verbose {
		return
	}
	fmt.Fprintf(w, "total duration:  %s\n", m.TotalDuration)
	fmt.Fprintf(w, "load duration:   %s\n", m.LoadDuration)
	fmt.Fprintf(w, "prompt tokens:   %d\n", m.PromptTokens)
	fmt.Fprintf(w, "eval tokens:     %d\n", m.CompletionTokens)
	fmt.Fprintf(w, "eval rate:       %.2f tokens/s\n", m.TokensPerSecond())
}
