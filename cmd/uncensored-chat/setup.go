package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/blackjackptit/uncensored-models/pkg/console"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
	"github.com/blackjackptit/uncensored-models/pkg/setup"
)

func newSetupCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the model directory and download every listed model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.runSetup(cmd, !yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Download without asking for confirmation")
	return cmd
}

func (a *app) runSetup(cmd *cobra.Command, confirm bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	console.Header(out, "UNCENSORED MODELS SETUP")
	version, err := a.ollama.Version(ctx)
	if err != nil {
		console.Failure(out, "Ollama is not installed")
		printInstallHelp(out)
		return errBackendUnavailable
	}
	console.Success(out, "Ollama version: %s", version)

	if err := runner.SetupEnvironment(a.cfg.ModelDir); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out)
	console.Success(out, "Model directory created: %s", a.cfg.ModelDir)
	console.Success(out, "%s set to: %s", runner.ModelsEnv, a.cfg.ModelDir)

	setup.PrintEnvInstructions(out, runtime.GOOS, a.cfg.ModelDir)

	opts := setup.DownloadOptions{
		Confirm:  confirm,
		ModelDir: a.cfg.ModelDir,
		Logger:   a.logger,
	}
	if confirm {
		in, closeInput := console.NewStdinReader()
		defer closeInput()
		opts.In = in
	}

	if _, err := setup.DownloadAll(ctx, a.ollama, a.registry, out, opts); err != nil {
		if errors.Is(err, setup.ErrCancelled) {
			return nil
		}
		return err
	}

	console.Header(out, "SETUP COMPLETE")
	_, _ = fmt.Fprintln(out, "\nTo start chatting, run:")
	_, _ = fmt.Fprintln(out, "  uncensored-chat")
	_, _ = fmt.Fprintf(out, "\nRemember to set %s permanently using the commands shown above!\n", runner.ModelsEnv)
	_, _ = fmt.Fprintln(out, console.Separator)
	return nil
}
