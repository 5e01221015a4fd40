package launch

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

type launchParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Runner        command.Runner
}

var Module = fx.Provide(
	func(v *viper.Viper, params launchParams) (*Launcher, error) {
		config, err := NewLaunchConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating launch config: %w", err)
		}

		if err = config.Validate(); err != nil {
			return nil, fmt.Errorf("error validating launch config: %w", err)
		}
		return NewLauncher(config, params.Runner)
	})
