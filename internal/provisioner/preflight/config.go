package preflight

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/comfykit/provisioner/pkg/configutils"
	"github.com/comfykit/provisioner/pkg/logging"
)

// DefaultInstallDir is where the inference server is expected to be checked
// out when nothing else is configured.
const DefaultInstallDir = "/workspace/ComfyUI"

type Config struct {
	AnotherLogger logging.Interface

	// InstallDir must pre-exist; its absence aborts the whole run.
	InstallDir string `mapstructure:"install_dir" validate:"required"`

	// ModelsDir is the flat directory model files land in.
	ModelsDir string `mapstructure:"models_dir" validate:"required"`

	// NodesDir is where plugin repositories are cloned.
	NodesDir string `mapstructure:"nodes_dir" validate:"required"`

	// InstallAccelerator allows preflight to install the aria2 package
	// when the accelerator binary is absent.
	InstallAccelerator bool `mapstructure:"install_accelerator"`
}

type Option func(*Config) error

// Apply applies the given options to the configuration.
func (c *Config) Apply(opts ...Option) error {
	for _, o := range opts {
		if o == nil {
			continue
		}

		if err := o(c); err != nil {
			return err
		}
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		InstallDir:         DefaultInstallDir,
		InstallAccelerator: true,
	}
}

// NewPreflightConfig builds and returns a new configuration from the given options.
func NewPreflightConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// WithAnotherLog sets the logger for the configuration.
func WithAnotherLog(logger logging.Interface) Option {
	return func(c *Config) error {
		c.AnotherLogger = logger
		return nil
	}
}

// WithViper sets the viper for the configuration.
func WithViper(v *viper.Viper) Option {
	return func(c *Config) error {
		*c = *defaultConfig()
		if err := configutils.BindEnvsRecursive(v, c, ""); err != nil {
			return fmt.Errorf("error occurred when binding environment variables: %w", err)
		}

		if err := v.Unmarshal(c); err != nil {
			return fmt.Errorf("error occurred when unmarshalling config: %w", err)
		}

		// The asset directories hang off the installation unless set
		// explicitly.
		if c.ModelsDir == "" {
			c.ModelsDir = filepath.Join(c.InstallDir, "models", "checkpoints")
		}
		if c.NodesDir == "" {
			c.NodesDir = filepath.Join(c.InstallDir, "custom_nodes")
		}

		return nil
	}
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
