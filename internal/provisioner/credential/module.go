package credential

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/pkg/logging"
)

type credentialParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Fs            afero.Fs
}

var Module = fx.Provide(
	func(v *viper.Viper, params credentialParams) (*Configurator, error) {
		config, err := NewCredentialConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating credential config: %w", err)
		}

		return NewConfigurator(config, params.Fs)
	})
