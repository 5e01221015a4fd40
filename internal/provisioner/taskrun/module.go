package taskrun

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

type taskRunParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Runner        command.Runner
}

var Module = fx.Provide(
	func(v *viper.Viper, params taskRunParams) (*Runner, error) {
		config, err := NewTaskRunConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating task run config: %w", err)
		}

		if err = config.Validate(); err != nil {
			return nil, fmt.Errorf("error validating task run config: %w", err)
		}
		return NewRunner(config, params.Runner)
	})
