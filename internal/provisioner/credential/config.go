package credential

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/comfykit/provisioner/pkg/configutils"
	"github.com/comfykit/provisioner/pkg/logging"
)

type Config struct {
	AnotherLogger logging.Interface

	// HFToken is the hub bearer token. Optional: public repositories
	// download without it.
	HFToken string `mapstructure:"hf_token"`

	// CivitaiToken is the marketplace API key, consumed later per
	// download. Optional.
	CivitaiToken string `mapstructure:"civitai_token"`

	// TokenFile overrides where the hub token is registered. Empty means
	// the hub client's conventional location.
	TokenFile string `mapstructure:"hf_token_file"`
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

// NewCredentialConfig builds and returns a new configuration from the given options.
func NewCredentialConfig(opts ...Option) (*Config, error) {
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
		if err := configutils.BindEnvsRecursive(v, c, ""); err != nil {
			return fmt.Errorf("error occurred when binding environment variables: %w", err)
		}

		if err := v.Unmarshal(c); err != nil {
			return fmt.Errorf("error occurred when unmarshalling config: %w", err)
		}

		return nil
	}
}
