// Package runner drives the external model-serving binary as a subprocess.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/blackjackptit/uncensored-models/pkg/config"
	loggerpkg "github.com/blackjackptit/uncensored-models/pkg/logger"
)

// ModelsEnv is the variable telling the binary where model weights live.
const ModelsEnv = "OLLAMA_MODELS"

// ErrTimeout is returned when a command exceeds its configured timeout.
var ErrTimeout = errors.New("command timed out")

// Result captures the outcome of one external invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner sends a fully rendered prompt to a model. A non-zero exit status is
// reported through Result; err is reserved for invocations that could not
// run to completion (missing binary, timeout, cancellation).
type Runner interface {
	Run(ctx context.Context, model, prompt string) (Result, error)
}

// Option configures an Ollama runner.
type Option func(*Ollama)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(o *Ollama) {
		o.logger = l
	}
}

// Ollama invokes the ollama command-line tool.
type Ollama struct {
	binary   string
	modelDir string
	timeout  time.Duration
	logger   loggerpkg.Logger
	verbose  bool
}

// New builds an Ollama runner from cfg.
func New(cfg config.Config, opts ...Option) *Ollama {
	cfg = config.Normalize(cfg)
	o := &Ollama{
		binary:   cfg.Binary,
		modelDir: cfg.ModelDir,
		timeout:  cfg.Timeout,
		logger:   loggerpkg.NopLogger{},
		verbose:  cfg.Verbose,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.logger == nil {
		o.logger = loggerpkg.NopLogger{}
	}
	return o
}

// WithTimeout returns a copy of o whose Run calls are bounded by d.
func (o *Ollama) WithTimeout(d time.Duration) *Ollama {
	cp := *o
	cp.timeout = d
	return &cp
}

// Run executes `ollama run <model> <prompt>`.
func (o *Ollama) Run(ctx context.Context, model, prompt string) (Result, error) {
	return o.exec(ctx, o.timeout, "run", model, prompt)
}

// ListModels returns the raw `ollama list` table.
func (o *Ollama) ListModels(ctx context.Context) (string, error) {
	res, err := o.exec(ctx, 0, "list")
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", commandError("list", res)
	}
	return res.Stdout, nil
}

// Available reports whether the binary is installed and its service answers.
func (o *Ollama) Available(ctx context.Context) bool {
	_, err := o.ListModels(ctx)
	return err == nil
}

// Version returns the trimmed `ollama --version` output.
func (o *Ollama) Version(ctx context.Context) (string, error) {
	res, err := o.exec(ctx, 0, "--version")
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", commandError("--version", res)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Pull downloads a model, streaming the binary's progress output to stdout
// and stderr.
func (o *Ollama) Pull(ctx context.Context, model string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, o.binary, "pull", model)
	cmd.Env = o.env()
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	o.debugf("pull: model=%s model_dir=%s", model, o.modelDir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pull %s: %w", model, err)
	}
	return nil
}

// exec runs the binary with args, bounded by timeout when positive, and
// captures stdout and stderr.
func (o *Ollama) exec(ctx context.Context, timeout time.Duration, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	execCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(execCtx, o.binary, args...)
	cmd.Env = o.env()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	o.debugf("exec: %s %s (timeout=%v)", o.binary, args[0], timeout)
	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		switch {
		case errors.Is(execCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			res.ExitCode = -1
			o.debugf("exec: timeout exceeded after %v", timeout)
			return res, fmt.Errorf("%s %s: %w after %v", o.binary, args[0], ErrTimeout, timeout)
		case ctx.Err() != nil:
			res.ExitCode = -1
			return res, fmt.Errorf("%s %s: %w", o.binary, args[0], ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			o.debugf("exec: exit_code=%d duration=%v stderr=%d bytes", res.ExitCode, res.Duration, len(res.Stderr))
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("%s %s: %w", o.binary, args[0], err)
	}

	o.debugf("exec: completed duration=%v stdout=%d bytes", res.Duration, len(res.Stdout))
	return res, nil
}

// env is the parent environment with ModelsEnv pointed at the model directory.
func (o *Ollama) env() []string {
	base := os.Environ()
	if o.modelDir == "" {
		return base
	}
	env := make([]string, 0, len(base)+1)
	for _, kv := range base {
		if strings.HasPrefix(kv, ModelsEnv+"=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, ModelsEnv+"="+o.modelDir)
}

func (o *Ollama) debugf(format string, args ...any) {
	loggerpkg.Debugf(o.verbose, o.logger, format, args...)
}

func commandError(name string, res Result) error {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		return fmt.Errorf("%s: exit status %d", name, res.ExitCode)
	}
	return fmt.Errorf("%s: exit status %d: %s", name, res.ExitCode, msg)
}

// SetupEnvironment creates dir and points ModelsEnv at it for this process
// and its children.
func SetupEnvironment(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}
	return os.Setenv(ModelsEnv, dir)
}
