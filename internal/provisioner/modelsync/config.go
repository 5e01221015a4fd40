package modelsync

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/comfykit/provisioner/pkg/configutils"
	"github.com/comfykit/provisioner/pkg/logging"
)

// DefaultCivitaiEndpoint is the marketplace download-by-id REST endpoint.
const DefaultCivitaiEndpoint = "https://civitai.com/api/download/models"

type Config struct {
	AnotherLogger logging.Interface

	// ModelsDir is the flat directory every model file lands in.
	ModelsDir string `mapstructure:"models_dir" validate:"required"`

	// Models is the newline-delimited `source:identifier[:filename]` list.
	Models string `mapstructure:"models"`

	// CivitaiToken is attached to marketplace downloads as a query
	// parameter when present.
	CivitaiToken string `mapstructure:"civitai_token"`

	// CivitaiEndpoint is the marketplace download endpoint.
	CivitaiEndpoint string `mapstructure:"civitai_endpoint" validate:"required"`

	// FailFast aborts the run on the first download failure. The model
	// files are the primary deliverable, so this defaults to true.
	FailFast bool `mapstructure:"fail_fast"`
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
		CivitaiEndpoint: DefaultCivitaiEndpoint,
		FailFast:        true,
	}
}

// NewModelSyncConfig builds and returns a new configuration from the given options.
func NewModelSyncConfig(opts ...Option) (*Config, error) {
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

		if c.ModelsDir == "" {
			installDir := v.GetString("install_dir")
			if installDir != "" {
				c.ModelsDir = filepath.Join(installDir, "models", "checkpoints")
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
