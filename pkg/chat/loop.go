// Package chat implements the interactive conversation with a model: input
// classification, history, prompt rendering and the selector/loop cycle.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/blackjackptit/uncensored-models/pkg/console"
	loggerpkg "github.com/blackjackptit/uncensored-models/pkg/logger"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

const inputPrompt = "You: "

// Loop is one conversation with a single model. A Loop is not reusable: its
// history is discarded when Run returns.
type Loop struct {
	id      string
	model   string
	runner  runner.Runner
	in      console.LineReader
	out     io.Writer
	history History
	opts    options
}

// NewLoop prepares a conversation with model and an empty history.
func NewLoop(model string, r runner.Runner, in console.LineReader, out io.Writer, opts ...Option) *Loop {
	if out == nil {
		out = io.Discard
	}
	return &Loop{
		id:     uuid.NewString(),
		model:  model,
		runner: r,
		in:     in,
		out:    out,
		opts:   applyOptions(opts),
	}
}

// History returns a copy of the current transcript.
func (l *Loop) History() []Message {
	return l.history.Messages()
}

// Run reads and handles input until the user leaves. It returns true when
// the user asked to pick another model and false when the session is over.
func (l *Loop) Run(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	l.debug("loop start", map[string]any{"session": l.id, "model": l.model})
	l.printBanner()

	for {
		if ctx.Err() != nil {
			l.farewell()
			return false
		}

		line, err := l.in.ReadLine(inputPrompt)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, console.ErrInterrupted) {
				l.printError(err)
			}
			_, _ = fmt.Fprintln(l.out)
			l.farewell()
			return false
		}

		cmd := ParseCommand(line)
		switch cmd.Kind {
		case CommandEmpty:
			continue
		case CommandExit:
			l.farewell()
			return false
		case CommandClear:
			l.history.Clear()
			_, _ = fmt.Fprintln(l.out)
			_, _ = fmt.Fprintln(l.out, console.DimStyle.Render("[Conversation history cleared]"))
			_, _ = fmt.Fprintln(l.out)
		case CommandSwitchModel:
			l.debug("switch model requested", map[string]any{"session": l.id})
			return true
		case CommandMessage:
			l.turn(ctx, cmd.Text)
		}
	}
}

// turn sends input with the full history and records the reply. Failures
// are printed and leave the user message in history.
func (l *Loop) turn(ctx context.Context, input string) {
	defer func() {
		if r := recover(); r != nil {
			loggerpkg.Error(l.opts.logger, "turn panicked", map[string]any{"session": l.id, "panic": fmt.Sprint(r)})
			l.printError(fmt.Errorf("%v", r))
		}
	}()

	l.history.Append(Message{Role: RoleUser, Content: input})
	prompt := l.history.Prompt()
	l.debug("turn start", map[string]any{
		"session":      l.id,
		"messages":     l.history.Len(),
		"prompt_bytes": len(prompt),
	})

	turnCtx, stop := l.opts.turnContext(ctx)
	defer stop()

	res, err := l.runner.Run(turnCtx, l.model, prompt)
	if err != nil {
		l.printError(err)
		return
	}
	if !res.Success() {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("%s exited with status %d", l.model, res.ExitCode)
		}
		l.printError(errors.New(msg))
		return
	}

	response := strings.TrimSpace(res.Stdout)
	l.history.Append(Message{Role: RoleAssistant, Content: response})
	l.debug("turn done", map[string]any{"session": l.id, "duration_ms": res.Duration.Milliseconds()})

	_, _ = fmt.Fprintln(l.out)
	_, _ = fmt.Fprintf(l.out, "%s %s\n", console.ModelStyle.Render(l.model+":"), l.opts.render(response))
	_, _ = fmt.Fprintln(l.out)
}

func (l *Loop) printBanner() {
	console.Header(l.out, "Starting chat with "+l.model)
	if l.opts.verbose {
		_, _ = fmt.Fprintln(l.out, console.DimStyle.Render("Session: "+l.id))
	}
	_, _ = fmt.Fprintln(l.out, "Type 'exit', 'quit', or press Ctrl+C to end the conversation")
	_, _ = fmt.Fprintln(l.out, "Type '/clear' to clear conversation history")
	_, _ = fmt.Fprintln(l.out, "Type '/models' to switch models")
	_, _ = fmt.Fprintln(l.out, console.Separator)
	_, _ = fmt.Fprintln(l.out)
}

func (l *Loop) farewell() {
	_, _ = fmt.Fprintln(l.out)
	_, _ = fmt.Fprintln(l.out, "Goodbye!")
}

func (l *Loop) printError(err error) {
	_, _ = fmt.Fprintln(l.out)
	_, _ = fmt.Fprintf(l.out, "%s %v\n", console.ErrorStyle.Render("Error:"), err)
}

func (l *Loop) debug(msg string, obj any) {
	loggerpkg.Debug(l.opts.verbose, l.opts.logger, msg, obj)
}
