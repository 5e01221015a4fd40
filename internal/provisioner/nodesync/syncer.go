// Package nodesync materializes the configured plugin repositories under the
// nodes directory. An already present node is never re-cloned; it is pulled
// in place only when the update flag is on. Per-entry failures are collected
// and reported but never stop the sync.
package nodesync

import (
	"context"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/comfykit/provisioner/internal/provisioner/textlist"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/logging"
)

const requirementsFile = "requirements.txt"

type Syncer struct {
	logger logging.Interface
	Config Config
	fs     afero.Fs
	git    *gitcli.Client
	runner command.Runner
}

// NewSyncer constructs the node sync stage from the given configuration.
func NewSyncer(config *Config, fs afero.Fs, git *gitcli.Client, runner command.Runner) (*Syncer, error) {
	return &Syncer{
		logger: config.AnotherLogger,
		Config: *config,
		fs:     fs,
		git:    git,
		runner: runner,
	}, nil
}

// Run syncs every configured node. The returned error aggregates per-entry
// failures; callers treat it as advisory since the stage is best-effort.
func (s *Syncer) Run(ctx context.Context) error {
	entries := textlist.Lines(s.Config.Nodes)
	if len(entries) == 0 {
		s.logger.Info("No custom nodes configured")
		return nil
	}

	var result *multierror.Error
	for _, repoURL := range entries {
		if err := s.syncNode(ctx, repoURL); err != nil {
			s.logger.WithField("node", repoURL).WithError(err).Error("Node sync failed")
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func (s *Syncer) syncNode(ctx context.Context, repoURL string) error {
	name := gitcli.RepoName(repoURL)
	nodeDir := filepath.Join(s.Config.NodesDir, name)

	exists, err := afero.DirExists(s.fs, nodeDir)
	if err != nil {
		return err
	}

	if exists {
		if !s.Config.UpdateNodes {
			s.logger.Infof("Node %s already present, skipping", name)
			return nil
		}

		s.logger.Infof("Updating node %s", name)
		return s.git.Pull(ctx, nodeDir)
	}

	s.logger.Infof("Cloning node %s", name)
	if err := s.git.Clone(ctx, repoURL, nodeDir); err != nil {
		return err
	}

	// A failed dependency install leaves the clone in place; the error is
	// surfaced but the node still counts as synced.
	if s.Config.InstallRequirements {
		if err := s.installRequirements(ctx, name, nodeDir); err != nil {
			s.logger.WithField("node", name).WithError(err).Error("Dependency install failed")
		}
	}

	return nil
}

func (s *Syncer) installRequirements(ctx context.Context, name, nodeDir string) error {
	reqPath := filepath.Join(nodeDir, requirementsFile)
	exists, err := afero.Exists(s.fs, reqPath)
	if err != nil || !exists {
		return err
	}

	s.logger.Infof("Installing dependencies for node %s", name)
	_, err = s.runner.Output(ctx, command.Command{
		Name: "pip",
		Args: []string{"install", "-r", reqPath},
		Dir:  nodeDir,
	})
	return err
}
