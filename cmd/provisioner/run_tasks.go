package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/taskrun"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

// RunTasksCommand executes the configured custom tasks only.
type RunTasksCommand struct {
	runner *taskrun.Runner
}

func (r *RunTasksCommand) Name() string {
	return "run-tasks"
}

func (r *RunTasksCommand) ShortDescription() string {
	return "Run the configured custom tasks"
}

func (r *RunTasksCommand) LongDescription() string {
	return "Runs the pipe-delimited custom task list through the system shell, continuing past failures."
}

func (r *RunTasksCommand) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runStageCommand(cmd, r, r.Start)
	}
}

func (r *RunTasksCommand) FxModules() []fx.Option {
	return []fx.Option{
		command.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		taskrun.Module,
		fx.Invoke(func(tr *taskrun.Runner) {
			r.runner = tr
		}),
	}
}

func (r *RunTasksCommand) Start() error {
	return r.runner.Run(context.Background())
}

// NewRunTasksCommand creates the task-run-only command.
func NewRunTasksCommand() *RunTasksCommand {
	return &RunTasksCommand{}
}
