// Package modelsync materializes the configured model files in the flat
// models directory. Presence of the target file is the sole completion
// record: existing files are skipped without any network traffic. Unknown
// source tags are skipped with a warning; actual download failures abort
// the run, since the model files are the primary deliverable.
package modelsync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"github.com/spf13/afero"

	"github.com/comfykit/provisioner/internal/provisioner/textlist"
	"github.com/comfykit/provisioner/pkg/logging"
)

// hubDownloader is the slice of the hub client the syncer needs.
type hubDownloader interface {
	FileDownload(ctx context.Context, repoID, remotePath, destDir string) (string, error)
}

// urlFetcher is the slice of the accelerator the syncer needs.
type urlFetcher interface {
	Fetch(ctx context.Context, url, dir, filename string) error
}

type Syncer struct {
	logger  logging.Interface
	Config  Config
	fs      afero.Fs
	hub     hubDownloader
	fetcher urlFetcher
}

// NewSyncer constructs the model sync stage from the given configuration.
func NewSyncer(config *Config, fs afero.Fs, hub hubDownloader, fetcher urlFetcher) (*Syncer, error) {
	return &Syncer{
		logger:  config.AnotherLogger,
		Config:  *config,
		fs:      fs,
		hub:     hub,
		fetcher: fetcher,
	}, nil
}

// Run syncs every configured model entry in order.
func (s *Syncer) Run(ctx context.Context) error {
	entries := textlist.Lines(s.Config.Models)
	if len(entries) == 0 {
		s.logger.Info("No models configured")
		return nil
	}

	for _, line := range entries {
		entry, err := ParseEntry(line)
		if err != nil {
			var unknownErr *UnknownSourceError
			if errors.As(err, &unknownErr) {
				s.logger.WithField("entry", line).Warnf("Skipping entry: %v", err)
			} else {
				s.logger.WithField("entry", line).Warnf("Skipping malformed entry: %v", err)
			}
			continue
		}

		if err := s.syncEntry(ctx, entry); err != nil {
			if s.Config.FailFast {
				return fmt.Errorf("model download failed for %s: %w", entry.Filename, err)
			}
			s.logger.WithField("model", entry.Filename).WithError(err).Error("Model download failed")
		}
	}

	return nil
}

func (s *Syncer) syncEntry(ctx context.Context, entry Entry) error {
	target := filepath.Join(s.Config.ModelsDir, entry.Filename)

	exists, err := afero.Exists(s.fs, target)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Infof("Model %s already present, skipping", entry.Filename)
		return nil
	}

	switch entry.Source {
	case SourceHuggingFace:
		return s.syncFromHub(ctx, entry, target)
	case SourceCivitai:
		return s.fetcher.Fetch(ctx, s.civitaiURL(entry.Identifier), s.Config.ModelsDir, entry.Filename)
	case SourceURL:
		return s.fetcher.Fetch(ctx, entry.Identifier, s.Config.ModelsDir, entry.Filename)
	default:
		return fmt.Errorf("unhandled model source %q", entry.Source)
	}
}

// syncFromHub downloads through the hub client, which names the file after
// the remote path. When the entry requests a different target name, the
// result is moved to the exact target path.
func (s *Syncer) syncFromHub(ctx context.Context, entry Entry, target string) error {
	repoID, remotePath, err := splitHubIdentifier(entry.Identifier)
	if err != nil {
		return err
	}

	downloaded, err := s.hub.FileDownload(ctx, repoID, remotePath, s.Config.ModelsDir)
	if err != nil {
		return err
	}

	if downloaded == target {
		return nil
	}
	return s.moveFile(downloaded, target)
}

func (s *Syncer) civitaiURL(modelID string) string {
	url := s.Config.CivitaiEndpoint + "/" + modelID
	if s.Config.CivitaiToken != "" {
		url += "?token=" + s.Config.CivitaiToken
	}
	return url
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// rename fails (e.g. the models directory is a separate mount).
func (s *Syncer) moveFile(src, dst string) error {
	if err := s.fs.Rename(src, dst); err == nil {
		return nil
	}

	if _, ok := s.fs.(*afero.OsFs); ok {
		if err := cp.Copy(src, dst); err != nil {
			return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
		}
		return s.fs.Remove(src)
	}

	data, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, dst, data, 0o644); err != nil {
		return err
	}
	return s.fs.Remove(src)
}
