// Package fetch drives the aria2c segmented downloader for direct URL and
// marketplace model fetches.
package fetch

import (
	"context"
	"fmt"
	"strconv"

	"github.com/comfykit/provisioner/pkg/command"
)

const binaryName = "aria2c"

// Fetcher downloads single files with aria2c.
type Fetcher struct {
	config *Config
	runner command.Runner
}

// NewFetcher creates a fetcher from the given configuration and runner.
func NewFetcher(config *Config, runner command.Runner) (*Fetcher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fetch config: %w", err)
	}

	return &Fetcher{config: config, runner: runner}, nil
}

// Installed reports whether the aria2c binary is on PATH.
func (f *Fetcher) Installed() bool {
	_, err := f.runner.LookPath(binaryName)
	return err == nil
}

// Fetch downloads url into dir under the given filename. The download is
// delegated entirely to aria2c; its non-zero exit is the only failure signal.
func (f *Fetcher) Fetch(ctx context.Context, url, dir, filename string) error {
	if f.config.Logger != nil {
		f.config.Logger.
			WithField("url", url).
			WithField("target", filename).
			Info("Fetching with accelerator")
	}

	err := f.runner.Run(ctx, command.Command{
		Name: binaryName,
		Args: f.args(url, dir, filename),
	})
	if err != nil {
		return fmt.Errorf("aria2c failed for %s (exit %d): %w", url, command.ExitCode(err), err)
	}

	return nil
}

func (f *Fetcher) args(url, dir, filename string) []string {
	args := []string{
		"--console-log-level=warn",
		"--summary-interval=10",
		"-x", strconv.Itoa(f.config.Connections),
		"-s", strconv.Itoa(f.config.Splits),
		"-k", f.config.ChunkSize,
	}
	if f.config.Continue {
		args = append(args, "-c")
	}
	args = append(args, "-d", dir, "-o", filename, url)
	return args
}
