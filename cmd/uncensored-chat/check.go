package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackjackptit/uncensored-models/pkg/runner"
	"github.com/blackjackptit/uncensored-models/pkg/setup"
)

func newCheckCommand() *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Smoke-test the ollama installation with a couple of prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if model == "" {
				model = a.registry.DefaultDescriptor().Name
			}
			if err := runner.SetupEnvironment(a.cfg.ModelDir); err != nil {
				return err
			}
			backend := a.ollama.WithTimeout(a.cfg.CheckTimeout)
			if failed := setup.Check(cmd.Context(), backend, model, cmd.OutOrStdout()); failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model to test (defaults to the registry default)")
	return cmd
}
