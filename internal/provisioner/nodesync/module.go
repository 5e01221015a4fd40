package nodesync

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/logging"
)

type nodeSyncParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Fs            afero.Fs
	Git           *gitcli.Client
	Runner        command.Runner
}

var Module = fx.Provide(
	func(v *viper.Viper, params nodeSyncParams) (*Syncer, error) {
		config, err := NewNodeSyncConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating node sync config: %w", err)
		}

		if err = config.Validate(); err != nil {
			return nil, fmt.Errorf("error validating node sync config: %w", err)
		}
		return NewSyncer(config, params.Fs, params.Git, params.Runner)
	})
