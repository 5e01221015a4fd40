package hub

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/logging"
)

// clientParams represents the parameters injected into the hub client.
type clientParams struct {
	fx.In

	Logger        logging.Interface `name:"hub_logger" optional:"true"`
	AnotherLogger logging.Interface `name:"another_log" optional:"true"`
}

// Module provides the hub client from viper configuration.
var Module = fx.Provide(
	func(v *viper.Viper, params clientParams) (*Client, error) {
		logger := params.Logger
		if logger == nil {
			logger = params.AnotherLogger
		}

		opts := []Option{WithViper(v)}
		if logger != nil {
			opts = append(opts, WithLogger(logger))
		}

		config, err := NewConfig(opts...)
		if err != nil {
			return nil, fmt.Errorf("error creating hub config: %w", err)
		}

		return NewClient(config)
	})
