package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackjackptit/uncensored-models/pkg/chat"
	"github.com/blackjackptit/uncensored-models/pkg/console"
	loggerpkg "github.com/blackjackptit/uncensored-models/pkg/logger"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

var errBackendUnavailable = errors.New("ollama is not installed or not running")

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "uncensored-chat",
		Short: "Chat with locally served models",
		Long: `Start an interactive chat with a model served by ollama.

In-chat commands:
  exit, quit   end the conversation
  /clear       clear conversation history
  /models      switch to a different model`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.runChat(cmd)
		},
	}
	root.AddCommand(newSetupCommand(), newCheckCommand())
	return root
}

func (a *app) runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	console.Header(out, "UNCENSORED LLM CHAT")
	if err := runner.SetupEnvironment(a.cfg.ModelDir); err != nil {
		loggerpkg.Warn(a.logger, "environment setup failed", map[string]any{"error": err.Error()})
		_, _ = fmt.Fprintln(out, console.WarningStyle.Render("Warning: "+err.Error()))
	}

	if !a.ollama.Available(ctx) {
		printInstallHelp(out)
		return errBackendUnavailable
	}
	_, _ = fmt.Fprintln(out)
	console.Success(out, "Ollama is installed and running")
	loggerpkg.Info(a.logger, "backend available", map[string]any{"binary": a.cfg.Binary})

	_, _ = fmt.Fprintln(out, "\nInstalled models:")
	printInstalledModels(ctx, out, a.ollama, a.logger)

	in, closeInput := console.NewStdinReader()
	defer closeInput()

	opts := []chat.Option{chat.WithLogger(a.logger, a.cfg.Verbose)}
	if a.cfg.Markdown && console.IsStdoutTTY() {
		md, err := console.NewMarkdownRenderer(0)
		if err != nil {
			loggerpkg.Warn(a.logger, "markdown renderer unavailable", map[string]any{"error": err.Error()})
		} else {
			opts = append(opts, chat.WithRenderer(md.Render))
		}
	}

	return chat.NewSession(a.registry, a.ollama, in, out, opts...).Run(ctx)
}

// modelLister is the part of the backend printInstalledModels needs.
type modelLister interface {
	ListModels(ctx context.Context) (string, error)
}

func printInstalledModels(ctx context.Context, w io.Writer, l modelLister, logger loggerpkg.Logger) {
	installed, err := l.ListModels(ctx)
	if err != nil {
		loggerpkg.Warn(logger, "listing installed models failed", map[string]any{"error": err.Error()})
		_, _ = fmt.Fprintln(w, console.WarningStyle.Render("Warning: could not list installed models: "+err.Error()))
		return
	}
	_, _ = fmt.Fprintln(w, installed)
}

func printInstallHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, console.WarningStyle.Render("⚠️  Ollama is not installed or not running!"))
	_, _ = fmt.Fprintln(w, "\nTo install Ollama:")
	_, _ = fmt.Fprintln(w, "1. Download from: https://ollama.ai")
	_, _ = fmt.Fprintln(w, "2. Run the installer")
	_, _ = fmt.Fprintln(w, "3. Restart this program")
	_, _ = fmt.Fprintln(w, "\nAfter installation, run: uncensored-chat setup")
}
