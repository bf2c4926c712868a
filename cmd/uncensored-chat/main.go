// Command uncensored-chat is an interactive terminal chat with models served
// by a local ollama installation.
package main

import (
	"fmt"
	"os"
)

// main is the program entry point.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
