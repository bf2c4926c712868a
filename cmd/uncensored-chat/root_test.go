package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loggerpkg "github.com/blackjackptit/uncensored-models/pkg/logger"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("UNCENSORED_MODEL_DIR", filepath.Join(dir, "models"))
	t.Setenv("UNCENSORED_MODELS_FILE", "")
	t.Setenv("UNCENSORED_VERBOSE", "")
	t.Setenv("OLLAMA_MODELS", "")
	return dir
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "setup")
	assert.Contains(t, names, "check")
	assert.False(t, root.HasAvailableLocalFlags())
}

func TestRootRejectsArguments(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"unexpected"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func TestChatFailsWhenBackendMissing(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("UNCENSORED_BINARY", filepath.Join(dir, "no-ollama"))

	var out bytes.Buffer
	root := newRootCommand()
	root.SetArgs(nil)
	root.SetOut(&out)

	err := root.Execute()
	require.ErrorIs(t, err, errBackendUnavailable)
	assert.Contains(t, out.String(), "Ollama is not installed or not running!")
	assert.Contains(t, out.String(), "uncensored-chat setup")

	info, statErr := os.Stat(filepath.Join(dir, "models"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestCheckCommandWithFakeBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake binary is a shell script")
	}
	dir := isolateEnv(t)
	bin := filepath.Join(dir, "ollama")
	script := `#!/bin/sh
case "$1" in
  --version) echo "ollama version is 0.5.7" ;;
  list) echo "NAME ID SIZE" ;;
  run) echo "a reply" ;;
esac
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	t.Setenv("UNCENSORED_BINARY", bin)

	var out bytes.Buffer
	root := newRootCommand()
	root.SetArgs([]string{"check", "--model", "openhermes:7b"})
	root.SetOut(&out)

	require.NoError(t, root.Execute())
	assert.Equal(t, 2, strings.Count(out.String(), "a reply"))
}

func TestInvalidModelsFileIsReported(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: []\n"), 0o644))
	t.Setenv("UNCENSORED_MODELS_FILE", path)

	root := newRootCommand()
	root.SetArgs([]string{"check"})
	root.SetOut(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load models")
}

type listerFunc func(context.Context) (string, error)

func (f listerFunc) ListModels(ctx context.Context) (string, error) { return f(ctx) }

func TestPrintInstalledModels(t *testing.T) {
	var out, logs bytes.Buffer
	failing := listerFunc(func(context.Context) (string, error) {
		return "", errors.New("list: exit status 1: connection refused")
	})
	printInstalledModels(context.Background(), &out, failing, loggerpkg.NewWriterLogger(&logs))
	assert.Contains(t, out.String(), "could not list installed models")
	assert.Contains(t, out.String(), "connection refused")
	assert.Contains(t, logs.String(), "listing installed models failed")

	out.Reset()
	ok := listerFunc(func(context.Context) (string, error) { return "NAME ID SIZE", nil })
	printInstalledModels(context.Background(), &out, ok, nil)
	assert.Equal(t, "NAME ID SIZE\n", out.String())
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
