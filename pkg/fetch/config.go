package fetch

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/comfykit/provisioner/pkg/configutils"
	"github.com/comfykit/provisioner/pkg/logging"
)

// ConfigKey is the root viper key for the accelerator settings.
var ConfigKey = "fetch"

// Config holds the settings passed to the aria2c downloader.
type Config struct {
	Logger logging.Interface

	// Connections is the number of connections opened per server (-x).
	Connections int `mapstructure:"connections" validate:"gte=1,lte=16"`

	// Splits is the number of segments a file is split into (-s).
	Splits int `mapstructure:"splits" validate:"gte=1"`

	// ChunkSize is the minimum segment size (-k), in aria2c notation.
	ChunkSize string `mapstructure:"chunk_size" validate:"required"`

	// Continue resumes partially downloaded files (-c).
	Continue bool `mapstructure:"continue"`
}

// Option is a configuration option for the fetcher.
type Option func(*Config) error

func defaultConfig() *Config {
	return &Config{
		Connections: 16,
		Splits:      16,
		ChunkSize:   "1M",
		Continue:    true,
	}
}

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

// NewConfig builds and returns a new configuration from the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// WithLogger sets the logger for the configuration.
func WithLogger(logger logging.Interface) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithViper resolves the configuration from the "fetch" viper key.
func WithViper(v *viper.Viper) Option {
	return func(c *Config) error {
		if err := configutils.BindEnvsRecursive(v, c, ConfigKey); err != nil {
			return fmt.Errorf("error occurred when binding environment variables: %w", err)
		}

		if err := v.UnmarshalKey(ConfigKey, c); err != nil {
			return fmt.Errorf("error occurred when unmarshalling config: %w", err)
		}

		return nil
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
