package setup

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/blackjackptit/uncensored-models/pkg/console"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

// Backend is what Check exercises.
type Backend interface {
	runner.Runner
	Version(ctx context.Context) (string, error)
	ListModels(ctx context.Context) (string, error)
}

// CheckPrompts are sent to the model during Check.
var CheckPrompts = []string{
	"Write a haiku about AI",
	"Tell me a very short joke about robots",
}

// Check runs the installation smoke tests against model and returns the
// number of failed tests. Bounding each prompt is left to the Backend.
func Check(ctx context.Context, b Backend, model string, out io.Writer) int {
	if out == nil {
		out = io.Discard
	}
	console.Header(out, "TESTING CHAT APPLICATION")
	failed := 0
	test := 0
	step := func(title string) {
		test++
		_, _ = fmt.Fprintf(out, "\nTest %d: %s\n", test, title)
	}

	step("Checking Ollama installation...")
	if v, err := b.Version(ctx); err != nil {
		console.Failure(out, "Ollama is not installed: %v", err)
		failed++
	} else {
		console.Success(out, "Ollama is installed: %s", v)
	}

	step("Listing available models...")
	if list, err := b.ListModels(ctx); err != nil || strings.TrimSpace(list) == "" {
		console.Failure(out, "Failed to list models")
		failed++
	} else {
		console.Success(out, "Available models:")
		_, _ = fmt.Fprintln(out, list)
	}

	for _, prompt := range CheckPrompts {
		step(fmt.Sprintf("Testing %s with a prompt...", model))
		_, _ = fmt.Fprintf(out, "Prompt: '%s'\n\n", prompt)

		res, err := b.Run(ctx, model, prompt)
		switch {
		case err != nil:
			console.Failure(out, "Error running model: %v", err)
			failed++
		case !res.Success():
			console.Failure(out, "Failed to get response: %s", strings.TrimSpace(res.Stderr))
			failed++
		default:
			console.Success(out, "Response from %s:", model)
			_, _ = fmt.Fprintln(out, strings.Repeat("-", 60))
			_, _ = fmt.Fprintln(out, strings.TrimSpace(res.Stdout))
			_, _ = fmt.Fprintln(out, strings.Repeat("-", 60))
		}
	}

	_, _ = fmt.Fprintln(out)
	console.Header(out, "CHAT TEST COMPLETE")
	if failed == 0 {
		_, _ = fmt.Fprintln(out, "\nThe chat application is working! Start chatting with: uncensored-chat")
	} else {
		_, _ = fmt.Fprintf(out, "\n%d test(s) failed.\n", failed)
	}
	return failed
}
