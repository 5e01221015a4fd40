package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/credential"
	"github.com/comfykit/provisioner/internal/provisioner/launch"
	"github.com/comfykit/provisioner/internal/provisioner/modelsync"
	"github.com/comfykit/provisioner/internal/provisioner/nodesync"
	"github.com/comfykit/provisioner/internal/provisioner/pipeline"
	"github.com/comfykit/provisioner/internal/provisioner/preflight"
	"github.com/comfykit/provisioner/internal/provisioner/taskrun"
	"github.com/comfykit/provisioner/pkg/afero"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/fetch"
	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/hub"
	"github.com/comfykit/provisioner/pkg/logging"
)

// ProvisionCommand runs the full pipeline: preflight, credentials, node
// sync, model sync, custom tasks, launch.
type ProvisionCommand struct {
	pipeline *pipeline.Pipeline
}

func (p *ProvisionCommand) Name() string {
	return "provision"
}

func (p *ProvisionCommand) ShortDescription() string {
	return "Run the full provisioning pipeline"
}

func (p *ProvisionCommand) LongDescription() string {
	return "Runs every provisioning stage in order and finally starts the inference server in the foreground (unless start_server is off)."
}

func (p *ProvisionCommand) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runStageCommand(cmd, p, p.Start)
	}
}

func (p *ProvisionCommand) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		command.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		logging.ModuleNamed("hub_logger"),
		gitcli.Module,
		fetch.Module,
		hub.Module,
		preflight.Module,
		credential.Module,
		nodesync.Module,
		modelsync.Module,
		taskrun.Module,
		launch.Module,
		pipeline.Module,
		fx.Invoke(func(pl *pipeline.Pipeline) {
			p.pipeline = pl
		}),
	}
}

func (p *ProvisionCommand) Start() error {
	return p.pipeline.Run(context.Background())
}

// NewProvisionCommand creates the full-pipeline command.
func NewProvisionCommand() *ProvisionCommand {
	return &ProvisionCommand{}
}
