package chat

import (
	"context"
	"io"

	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

// fakeRunner records prompts and replays scripted results in order. Once the
// script is exhausted it echoes a fixed reply.
type fakeRunner struct {
	calls   []runnerCall
	results []fakeResult
}

type runnerCall struct {
	model  string
	prompt string
}

type fakeResult struct {
	res   runner.Result
	err   error
	panic any
}

func (f *fakeRunner) Run(_ context.Context, model, prompt string) (runner.Result, error) {
	f.calls = append(f.calls, runnerCall{model: model, prompt: prompt})
	if len(f.results) == 0 {
		return runner.Result{Stdout: "  ok  \n"}, nil
	}
	next := f.results[0]
	f.results = f.results[1:]
	if next.panic != nil {
		panic(next.panic)
	}
	return next.res, next.err
}

func (f *fakeRunner) prompts() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.prompt
	}
	return out
}

// scriptedReader yields lines and then end, which defaults to io.EOF.
type scriptedReader struct {
	lines []string
	end   error
	reads int
}

func (s *scriptedReader) ReadLine(string) (string, error) {
	s.reads++
	if len(s.lines) == 0 {
		if s.end != nil {
			return "", s.end
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func noSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
