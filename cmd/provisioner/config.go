package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/preflight"
	"github.com/comfykit/provisioner/pkg/configutils"
)

const envPrefix = "PROVISIONER"

func configProvider(cli *cobra.Command) fx.Option {
	return fx.Provide(func() (*viper.Viper, error) {
		v := viper.New()

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		// Stages derive their directories from install_dir, so its default
		// lives here rather than in each stage config.
		v.SetDefault("install_dir", preflight.DefaultInstallDir)

		if err := v.BindPFlag("debug", cli.Flags().Lookup("debug")); err != nil {
			return nil, fmt.Errorf("can't bind debug flag: %w", err)
		}

		// The config file is optional; without one the run is driven by
		// defaults and PROVISIONER_* environment variables.
		if configFilePath != "" {
			if err := configutils.ResolveAndMergeFile(v, configFilePath); err != nil {
				return nil, fmt.Errorf("cannot read config file: %w", err)
			}
		}

		// Fix the issue where viper.UnmarshalKey only uses read config,
		// neglects environment variables
		for _, key := range v.AllKeys() {
			v.Set(key, v.Get(key))
		}
		return v, nil
	})
}
