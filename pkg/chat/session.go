package chat

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/blackjackptit/uncensored-models/pkg/console"
	"github.com/blackjackptit/uncensored-models/pkg/models"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

// Session alternates between the model menu and a conversation until the
// user ends a conversation without asking for another model.
type Session struct {
	registry models.Registry
	runner   runner.Runner
	in       console.LineReader
	out      io.Writer
	opts     []Option
}

// NewSession wires a session; opts are passed on to every Loop.
func NewSession(reg models.Registry, r runner.Runner, in console.LineReader, out io.Writer, opts ...Option) *Session {
	if out == nil {
		out = io.Discard
	}
	return &Session{registry: reg, runner: r, in: in, out: out, opts: opts}
}

// Run blocks until the session is over. Ending input at the menu is a
// normal exit.
func (s *Session) Run(ctx context.Context) error {
	if s.registry.Len() == 0 {
		return errors.New("model registry is empty")
	}
	for {
		model, err := models.Select(s.registry, s.in, s.out)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, console.ErrInterrupted) {
				_, _ = fmt.Fprintln(s.out)
				_, _ = fmt.Fprintln(s.out, "Goodbye!")
				return nil
			}
			return fmt.Errorf("select model: %w", err)
		}

		if !NewLoop(model, s.runner, s.in, s.out, s.opts...).Run(ctx) {
			return nil
		}
	}
}
