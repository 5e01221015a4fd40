// Package preflight verifies the host before any asset syncing starts: the
// installation directory must exist, the asset directories are created, and
// the external tools (git, the aria2c accelerator) must be usable.
package preflight

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/fetch"
	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/logging"
)

type Preflight struct {
	logger  logging.Interface
	Config  Config
	fs      afero.Fs
	runner  command.Runner
	git     *gitcli.Client
	fetcher *fetch.Fetcher
}

// NewPreflight constructs the preflight stage from the given configuration.
func NewPreflight(config *Config, fs afero.Fs, runner command.Runner, git *gitcli.Client, fetcher *fetch.Fetcher) (*Preflight, error) {
	return &Preflight{
		logger:  config.AnotherLogger,
		Config:  *config,
		fs:      fs,
		runner:  runner,
		git:     git,
		fetcher: fetcher,
	}, nil
}

// Run checks the environment. A missing installation directory is the one
// hard precondition and fails the whole run; missing tools are installed
// when possible.
func (p *Preflight) Run(ctx context.Context) error {
	exists, err := afero.DirExists(p.fs, p.Config.InstallDir)
	if err != nil {
		return fmt.Errorf("cannot stat installation directory %s: %w", p.Config.InstallDir, err)
	}
	if !exists {
		return fmt.Errorf("installation directory %s does not exist", p.Config.InstallDir)
	}
	p.logger.Infof("Installation directory %s found", p.Config.InstallDir)

	for _, dir := range []string{p.Config.ModelsDir, p.Config.NodesDir} {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}

	if !p.git.Installed() {
		return fmt.Errorf("git is not installed, node sync cannot run")
	}

	if !p.fetcher.Installed() {
		if !p.Config.InstallAccelerator {
			return fmt.Errorf("download accelerator (aria2c) is not installed")
		}
		p.logger.Warn("Download accelerator missing, attempting package install")
		if err := p.installAccelerator(ctx); err != nil {
			p.logger.WithError(err).Warn("Accelerator package install failed")
		}
		if !p.fetcher.Installed() {
			return fmt.Errorf("download accelerator (aria2c) is not installed and could not be installed")
		}
		p.logger.Info("Download accelerator installed")
	}

	return nil
}

func (p *Preflight) installAccelerator(ctx context.Context) error {
	out, err := p.runner.Output(ctx, command.Command{
		Name: "apt-get",
		Args: []string{"install", "-y", "aria2"},
	})
	if err != nil {
		return fmt.Errorf("apt-get install aria2: %w: %s", err, out)
	}
	return nil
}
