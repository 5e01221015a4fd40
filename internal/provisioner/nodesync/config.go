package nodesync

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/comfykit/provisioner/pkg/configutils"
	"github.com/comfykit/provisioner/pkg/logging"
)

type Config struct {
	AnotherLogger logging.Interface

	// NodesDir is where plugin repositories are cloned.
	NodesDir string `mapstructure:"nodes_dir" validate:"required"`

	// Nodes is the newline-delimited list of repository URLs.
	Nodes string `mapstructure:"nodes"`

	// UpdateNodes pulls already cloned repositories in place.
	UpdateNodes bool `mapstructure:"update_nodes"`

	// InstallRequirements installs a node's requirements.txt after cloning.
	InstallRequirements bool `mapstructure:"install_requirements"`
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
		InstallRequirements: true,
	}
}

// NewNodeSyncConfig builds and returns a new configuration from the given options.
func NewNodeSyncConfig(opts ...Option) (*Config, error) {
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

		if c.NodesDir == "" {
			installDir := v.GetString("install_dir")
			if installDir != "" {
				c.NodesDir = filepath.Join(installDir, "custom_nodes")
			}
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
