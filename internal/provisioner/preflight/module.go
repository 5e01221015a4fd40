package preflight

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/fetch"
	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/logging"
)

type preflightParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Fs            afero.Fs
	Runner        command.Runner
	Git           *gitcli.Client
	Fetcher       *fetch.Fetcher
}

var Module = fx.Provide(
	func(v *viper.Viper, params preflightParams) (*Preflight, error) {
		config, err := NewPreflightConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating preflight config: %w", err)
		}

		if err = config.Validate(); err != nil {
			return nil, fmt.Errorf("error validating preflight config: %w", err)
		}
		return NewPreflight(config, params.Fs, params.Runner, params.Git, params.Fetcher)
	})
