package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/launch"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

// LaunchCommand starts the inference server without any syncing.
type LaunchCommand struct {
	launcher *launch.Launcher
}

func (l *LaunchCommand) Name() string {
	return "launch"
}

func (l *LaunchCommand) ShortDescription() string {
	return "Start the inference server"
}

func (l *LaunchCommand) LongDescription() string {
	return "Starts the inference server in the foreground with the configured listen address and arguments. The server's exit status becomes the provisioner's."
}

func (l *LaunchCommand) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runStageCommand(cmd, l, l.Start)
	}
}

func (l *LaunchCommand) FxModules() []fx.Option {
	return []fx.Option{
		command.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		launch.Module,
		fx.Invoke(func(la *launch.Launcher) {
			l.launcher = la
		}),
	}
}

func (l *LaunchCommand) Start() error {
	return l.launcher.Run(context.Background())
}

// NewLaunchCommand creates the launch-only command.
func NewLaunchCommand() *LaunchCommand {
	return &LaunchCommand{}
}
