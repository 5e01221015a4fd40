package modelsync

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/fetch"
	"github.com/comfykit/provisioner/pkg/hub"
	"github.com/comfykit/provisioner/pkg/logging"
)

type modelSyncParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Fs            afero.Fs
	HubClient     *hub.Client
	Fetcher       *fetch.Fetcher
}

var Module = fx.Provide(
	func(v *viper.Viper, params modelSyncParams) (*Syncer, error) {
		config, err := NewModelSyncConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating model sync config: %w", err)
		}

		if err = config.Validate(); err != nil {
			return nil, fmt.Errorf("error validating model sync config: %w", err)
		}
		return NewSyncer(config, params.Fs, params.HubClient, params.Fetcher)
	})
