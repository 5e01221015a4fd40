package fetch

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

type fetchParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Runner        command.Runner
}

// Module provides the accelerator fetcher from viper configuration.
var Module = fx.Provide(
	func(v *viper.Viper, params fetchParams) (*Fetcher, error) {
		config, err := NewConfig(
			WithViper(v),
			WithLogger(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating fetch config: %w", err)
		}

		return NewFetcher(config, params.Runner)
	})
