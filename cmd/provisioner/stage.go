package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

var configFilePath string
var debug bool

// StageModule is one provisioning stage exposed as a subcommand.
type StageModule interface {
	Name() string
	ShortDescription() string
	LongDescription() string
	FxModules() []fx.Option

	// ConfigureCommand lets stages configure their commands (set the Run
	// function, add flags, etc.)
	ConfigureCommand(*cobra.Command)

	// Start is the default action when the command runs.
	Start() error
}

// CreateStageCommand creates a cobra command for a stage module.
func CreateStageCommand(module StageModule) *cobra.Command {
	cmd := &cobra.Command{
		Use:   module.Name(),
		Short: module.ShortDescription(),
		Long:  module.LongDescription(),
	}

	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "", "path to config file (optional, defaults and environment apply without one)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")

	module.ConfigureCommand(cmd)

	return cmd
}

// runStageCommand builds the fx app for a stage and runs the given action.
// A failing action exits the process with the underlying command's exit
// status when one is known, so a launched server's status becomes ours.
func runStageCommand(cmd *cobra.Command, module StageModule, action func() error) {
	options := []fx.Option{
		configProvider(cmd),
		logging.UseLoggingInterface,
	}

	options = append(options, module.FxModules()...)

	options = append(options, fx.Invoke(func(lc fx.Lifecycle, l *zap.Logger, sh fx.Shutdowner) {
		lc.Append(
			fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						if err := action(); err != nil {
							l.Error(module.Name()+" encountered an error during execution", zap.Error(err))
							os.Exit(exitCode(err))
						}
						if err := sh.Shutdown(); err != nil {
							l.Error("Failed to shutdown "+module.Name(), zap.Error(err))
						}
					}()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return nil
				},
			})
	}))

	app := fx.New(fx.Options(options...))
	app.Run()
}

func exitCode(err error) int {
	if code := command.ExitCode(err); code > 0 {
		return code
	}
	return 1
}
