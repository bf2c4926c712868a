package setup

import (
	"fmt"
	"io"
	"runtime"

	"github.com/blackjackptit/uncensored-models/pkg/console"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

// PrintEnvInstructions explains how to make the model directory permanent
// for the ollama service on the given OS ("windows", "darwin", "linux", ...).
func PrintEnvInstructions(w io.Writer, goos, dir string) {
	if goos == "" {
		goos = runtime.GOOS
	}
	console.Header(w, "IMPORTANT: Setting "+runner.ModelsEnv+" environment variable")
	_, _ = fmt.Fprintln(w, "\nFor persistent setup, set the environment variable:")

	switch goos {
	case "windows":
		_, _ = fmt.Fprintln(w, "\nWindows (PowerShell as Administrator):")
		_, _ = fmt.Fprintf(w, "[System.Environment]::SetEnvironmentVariable(%q, %q, \"Machine\")\n", runner.ModelsEnv, dir)
		_, _ = fmt.Fprintln(w, "\nWindows (Command Prompt as Administrator):")
		_, _ = fmt.Fprintf(w, "setx %s %q /M\n", runner.ModelsEnv, dir)
		_, _ = fmt.Fprintln(w, "\nAfter setting, restart the Ollama service:")
		_, _ = fmt.Fprintln(w, "1. Open Task Manager")
		_, _ = fmt.Fprintln(w, "2. End the 'Ollama' process")
		_, _ = fmt.Fprintln(w, "3. Start Ollama again")
	case "darwin":
		_, _ = fmt.Fprintln(w, "\nmacOS (Ollama app):")
		_, _ = fmt.Fprintf(w, "launchctl setenv %s %q\n", runner.ModelsEnv, dir)
		_, _ = fmt.Fprintln(w, "\nThen quit and reopen the Ollama app.")
	default:
		_, _ = fmt.Fprintln(w, "\nShell profile (~/.bashrc, ~/.zshrc):")
		_, _ = fmt.Fprintf(w, "export %s=%q\n", runner.ModelsEnv, dir)
		_, _ = fmt.Fprintln(w, "\nsystemd service (sudo systemctl edit ollama):")
		_, _ = fmt.Fprintln(w, "[Service]")
		_, _ = fmt.Fprintf(w, "Environment=\"%s=%s\"\n", runner.ModelsEnv, dir)
		_, _ = fmt.Fprintln(w, "\nThen restart it: sudo systemctl restart ollama")
	}
	_, _ = fmt.Fprintln(w, console.Separator)
}
