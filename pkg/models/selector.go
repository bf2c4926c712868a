package models

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blackjackptit/uncensored-models/pkg/console"
)

// Select prints the registry as a numbered menu, reads one choice and
// returns the chosen identifier. Anything that is not an in-range index
// selects the registry default. The only error is a failure of the input
// stream itself (io.EOF, console.ErrInterrupted).
func Select(reg Registry, in console.LineReader, out io.Writer) (string, error) {
	if out == nil {
		out = io.Discard
	}
	console.Header(out, "AVAILABLE UNCENSORED MODELS")
	for i, m := range reg.Models {
		_, _ = fmt.Fprintf(out, "%d. %s - %s\n", i+1, m.Description, m.Details)
	}
	_, _ = fmt.Fprintln(out, console.Separator)
	_, _ = fmt.Fprintln(out)

	line, err := in.ReadLine(fmt.Sprintf("Select model (1-%d): ", reg.Len()))
	if err != nil {
		return "", err
	}

	if d, ok := resolveChoice(reg, line); ok {
		_, _ = fmt.Fprintf(out, "Using %s\n", console.ModelStyle.Render(d.Description))
		return d.Name, nil
	}

	d := reg.DefaultDescriptor()
	_, _ = fmt.Fprintln(out, console.WarningStyle.Render(fmt.Sprintf("Invalid choice, using default (%s)", d.Description)))
	return d.Name, nil
}

func resolveChoice(reg Registry, input string) (Descriptor, bool) {
	input = strings.TrimSpace(input)
	n, err := strconv.Atoi(input)
	// "+1" and "01" parse but are not menu keys.
	if err != nil || strconv.Itoa(n) != input || n < 1 || n > reg.Len() {
		return Descriptor{}, false
	}
	return reg.Models[n-1], true
}
