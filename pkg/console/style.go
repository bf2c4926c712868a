package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Separator frames section headers.
var Separator = strings.Repeat("=", 60)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ModelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Bold(true)
)

func init() {
	lipgloss.SetColorProfile(ColorProfile())
}

// ColorProfile returns Ascii when colours are unwanted: NO_COLOR is set or
// stdout is not a terminal. FORCE_COLOR overrides the TTY check.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if os.Getenv("FORCE_COLOR") == "" && !IsStdoutTTY() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Header prints a separator-framed title.
func Header(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, Separator)
	_, _ = fmt.Fprintln(w, TitleStyle.Render(title))
	_, _ = fmt.Fprintln(w, Separator)
}

// Success prints a check-marked line.
func Success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Failure prints a cross-marked line.
func Failure(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}
