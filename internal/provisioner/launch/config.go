package launch

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/comfykit/provisioner/pkg/configutils"
	"github.com/comfykit/provisioner/pkg/logging"
)

const (
	DefaultServerCommand = "python3 main.py"
	DefaultServerHost    = "0.0.0.0"
	DefaultServerPort    = 8188
)

// ServerConfig describes the inference server process.
type ServerConfig struct {
	// Command is the interpreter and entry script, e.g. "python3 main.py".
	Command string `mapstructure:"command" validate:"required"`

	// Host is passed as --listen so the server binds all interfaces by default.
	Host string `mapstructure:"host" validate:"required"`

	// Port is passed as --port.
	Port int `mapstructure:"port" validate:"gt=0,lte=65535"`

	// Args are appended verbatim after the generated flags.
	Args []string `mapstructure:"args"`
}

type Config struct {
	AnotherLogger logging.Interface

	// StartServer gates the launch. When off the run ends after the sync
	// stages with a completion message.
	StartServer bool `mapstructure:"start_server"`

	// WorkDir is the directory the server starts in. Defaults to the
	// install directory, where the entry script lives.
	WorkDir string `mapstructure:"server_workdir" validate:"required"`

	Server ServerConfig `mapstructure:"server"`
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
		StartServer: true,
		Server: ServerConfig{
			Command: DefaultServerCommand,
			Host:    DefaultServerHost,
			Port:    DefaultServerPort,
		},
	}
}

// NewLaunchConfig builds and returns a new configuration from the given options.
func NewLaunchConfig(opts ...Option) (*Config, error) {
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

		if c.WorkDir == "" {
			c.WorkDir = v.GetString("install_dir")
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
