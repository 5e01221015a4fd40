// Package credential registers the available API tokens before any download
// runs. Everything here is best-effort: missing or unregistrable credentials
// produce warnings, never failures, because public assets still download
// unauthenticated.
package credential

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/comfykit/provisioner/pkg/logging"
)

type Configurator struct {
	logger logging.Interface
	Config Config
	fs     afero.Fs
}

// NewConfigurator constructs the credential stage from the given configuration.
func NewConfigurator(config *Config, fs afero.Fs) (*Configurator, error) {
	return &Configurator{
		logger: config.AnotherLogger,
		Config: *config,
		fs:     fs,
	}, nil
}

// Run registers the hub token when present and notes the marketplace key.
// It never returns a fatal error.
func (c *Configurator) Run(ctx context.Context) error {
	if c.Config.HFToken == "" {
		c.logger.Warn("No hub token configured, gated model downloads will fail")
	} else if err := c.registerHubToken(); err != nil {
		c.logger.WithError(err).Warn("Could not register hub token, downloads will still send it per request")
	} else {
		c.logger.Info("Hub token registered")
	}

	if c.Config.CivitaiToken == "" {
		c.logger.Warn("No marketplace API key configured, restricted marketplace downloads will fail")
	} else {
		c.logger.Info("Marketplace API key present, it will be attached to marketplace downloads")
	}

	return nil
}

// registerHubToken writes the token where the hub tooling conventionally
// reads it, so tools invoked by custom tasks pick it up too.
func (c *Configurator) registerHubToken() error {
	path := c.tokenFile()
	if err := c.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(c.fs, path, []byte(c.Config.HFToken), 0o600)
}

func (c *Configurator) tokenFile() string {
	if c.Config.TokenFile != "" {
		return c.Config.TokenFile
	}
	if hfHome := os.Getenv("HF_HOME"); hfHome != "" {
		return filepath.Join(hfHome, "token")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "/root"
	}
	return filepath.Join(home, ".cache", "huggingface", "token")
}
