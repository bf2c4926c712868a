// Package setup prepares a machine for chatting: it downloads the registry's
// models and smoke-tests the installed binary.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blackjackptit/uncensored-models/pkg/console"
	loggerpkg "github.com/blackjackptit/uncensored-models/pkg/logger"
	"github.com/blackjackptit/uncensored-models/pkg/models"
)

// ErrCancelled is returned when the user declines the download.
var ErrCancelled = errors.New("download cancelled")

// ErrNothingDownloaded is returned when every pull failed.
var ErrNothingDownloaded = errors.New("no models were downloaded")

// Puller fetches one model, streaming progress to stdout and stderr.
type Puller interface {
	Pull(ctx context.Context, model string, stdout, stderr io.Writer) error
}

// DownloadOptions controls DownloadAll.
type DownloadOptions struct {
	// Confirm asks before downloading. The answer is read from In.
	Confirm  bool
	In       console.LineReader
	ModelDir string
	Logger   loggerpkg.Logger
}

// DownloadAll pulls every model of reg one after another and returns how
// many succeeded. Individual failures are reported and skipped.
func DownloadAll(ctx context.Context, p Puller, reg models.Registry, out io.Writer, opts DownloadOptions) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	console.Header(out, "DOWNLOADING MODELS")
	_, _ = fmt.Fprintln(out, "\nThe following models will be downloaded:")
	for _, m := range reg.Models {
		_, _ = fmt.Fprintf(out, "  • %s - %s\n", m.Description, m.Details)
	}
	if opts.ModelDir != "" {
		_, _ = fmt.Fprintf(out, "\nDownload location: %s\n", opts.ModelDir)
	}
	_, _ = fmt.Fprintln(out, console.Separator)

	if opts.Confirm {
		if opts.In == nil {
			return 0, errors.New("confirmation requested without an input reader")
		}
		answer, err := opts.In.ReadLine("\nProceed with download? (y/n): ")
		if err != nil {
			return 0, fmt.Errorf("read confirmation: %w", err)
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			_, _ = fmt.Fprintln(out, "Download cancelled.")
			return 0, ErrCancelled
		}
	}

	success := 0
	for _, m := range reg.Models {
		if err := ctx.Err(); err != nil {
			return success, err
		}
		console.Header(out, "Downloading: "+m.Name)
		if err := p.Pull(ctx, m.Name, out, out); err != nil {
			loggerpkg.Warn(opts.Logger, "pull failed", map[string]any{"model": m.Name, "error": err.Error()})
			console.Failure(out, "Failed to download %s", m.Name)
			continue
		}
		console.Success(out, "Successfully downloaded %s", m.Name)
		success++
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, console.Separator)
	_, _ = fmt.Fprintf(out, "Download complete: %d/%d models\n", success, reg.Len())
	_, _ = fmt.Fprintln(out, console.Separator)

	if success == 0 {
		return 0, ErrNothingDownloaded
	}
	return success, nil
}
