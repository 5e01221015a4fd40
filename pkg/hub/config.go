package hub

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/comfykit/provisioner/pkg/configutils"
	"github.com/comfykit/provisioner/pkg/logging"
)

// ConfigKey is the root viper key for the hub client settings.
var ConfigKey = "hub"

// Config represents the configuration for the Hub client.
type Config struct {
	Logger logging.Interface

	Token           string        `mapstructure:"token"`
	Endpoint        string        `mapstructure:"endpoint" validate:"required"`
	Revision        string        `mapstructure:"revision" validate:"required"`
	UserAgent       string        `mapstructure:"user_agent"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	MaxRetries      int           `mapstructure:"max_retries" validate:"gte=0"`
	RetryInterval   time.Duration `mapstructure:"retry_interval"`
}

func defaultConfig() *Config {
	return &Config{
		Endpoint:        DefaultEndpoint,
		Revision:        DefaultRevision,
		UserAgent:       DefaultUserAgent,
		RequestTimeout:  DefaultRequestTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
		MaxRetries:      DefaultMaxRetries,
		RetryInterval:   DefaultRetryInterval,
		Token:           GetHfToken(),
	}
}

// Option represents a configuration option function.
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

// NewConfig builds and returns a new configuration from the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// WithLogger specifies the logger.
func WithLogger(logger logging.Interface) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("invalid logger nil")
		}

		c.Logger = logger
		return nil
	}
}

// WithToken specifies the bearer token.
func WithToken(token string) Option {
	return func(c *Config) error {
		c.Token = token
		return nil
	}
}

// WithEndpoint specifies the hub endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) error {
		if endpoint == "" {
			return errors.New("endpoint cannot be empty")
		}
		c.Endpoint = endpoint
		return nil
	}
}

// WithRevision specifies the git revision files resolve against.
func WithRevision(revision string) Option {
	return func(c *Config) error {
		if revision == "" {
			return errors.New("revision cannot be empty")
		}
		c.Revision = revision
		return nil
	}
}

// WithRetryConfig specifies retry behavior.
func WithRetryConfig(maxRetries int, retryInterval time.Duration) Option {
	return func(c *Config) error {
		if maxRetries < 0 {
			return errors.New("max retries cannot be negative")
		}
		c.MaxRetries = maxRetries
		c.RetryInterval = retryInterval
		return nil
	}
}

// WithViper resolves the configuration from the "hub" viper key.
func WithViper(v *viper.Viper) Option {
	return func(c *Config) error {
		if err := configutils.BindEnvsRecursive(v, c, ConfigKey); err != nil {
			return fmt.Errorf("error occurred when binding environment variables: %w", err)
		}

		if err := v.UnmarshalKey(ConfigKey, c); err != nil {
			return fmt.Errorf("error occurred when unmarshalling config: %w", err)
		}

		// The top-level credential key wins over hub.token, so the same
		// value configured for the credential stage reaches the client.
		if v.IsSet("hf_token") && v.GetString("hf_token") != "" {
			c.Token = v.GetString("hf_token")
		}

		return nil
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
