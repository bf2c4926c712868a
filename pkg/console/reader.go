package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrInterrupted is returned by a LineReader when the user aborts the prompt
// with Ctrl+C.
var ErrInterrupted = errors.New("input interrupted")

// LineReader reads one line of user input after printing a prompt.
// Implementations return io.EOF at end of input and ErrInterrupted on Ctrl+C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ScannerReader reads lines from any io.Reader. It is used for piped input
// and in tests. Lines have no length limit. While a read is pending, SIGINT
// is caught and reported as ErrInterrupted.
type ScannerReader struct {
	reader *bufio.Reader
	out    io.Writer
	lines  chan lineResult
	start  sync.Once
}

type lineResult struct {
	line string
	err  error
}

// NewScannerReader wraps in; prompts are written to out.
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	if out == nil {
		out = io.Discard
	}
	return &ScannerReader{
		reader: bufio.NewReader(in),
		out:    out,
		lines:  make(chan lineResult),
	}
}

func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, _ = fmt.Fprint(r.out, prompt)
	r.start.Do(func() { go r.pump() })

	select {
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	case <-ctx.Done():
		return "", ErrInterrupted
	}
}

// pump feeds r.lines until the input ends. It runs in its own goroutine so
// a blocked read can be abandoned on interrupt.
func (r *ScannerReader) pump() {
	defer close(r.lines)
	for {
		line, err := r.reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			r.lines <- lineResult{line: line}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.lines <- lineResult{err: fmt.Errorf("read input: %w", err)}
			}
			return
		}
	}
}

// TerminalReader provides line editing and in-memory input history on a TTY.
type TerminalReader struct {
	line *liner.State
}

// NewTerminalReader takes over the terminal until Close is called.
func NewTerminalReader() *TerminalReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &TerminalReader{line: line}
}

func (r *TerminalReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInterrupted
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close restores the terminal mode.
func (r *TerminalReader) Close() error {
	return r.line.Close()
}

// NewStdinReader picks a TerminalReader when stdin is a TTY and a
// ScannerReader otherwise. The returned close function must always be called.
func NewStdinReader() (LineReader, func()) {
	if IsStdinTTY() {
		r := NewTerminalReader()
		return r, func() { _ = r.Close() }
	}
	return NewScannerReader(os.Stdin, os.Stdout), func() {}
}

// IsStdinTTY reports whether stdin is attached to a terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is attached to a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
