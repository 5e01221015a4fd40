package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/preflight"
	"github.com/comfykit/provisioner/pkg/afero"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/fetch"
	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/logging"
)

// PreflightCommand verifies the host without syncing anything.
type PreflightCommand struct {
	preflight *preflight.Preflight
}

func (p *PreflightCommand) Name() string {
	return "preflight"
}

func (p *PreflightCommand) ShortDescription() string {
	return "Verify the environment before provisioning"
}

func (p *PreflightCommand) LongDescription() string {
	return "Checks the installation directory, creates the asset directories, and verifies (installing when possible) the external tools the sync stages need."
}

func (p *PreflightCommand) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runStageCommand(cmd, p, p.Start)
	}
}

func (p *PreflightCommand) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		command.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		gitcli.Module,
		fetch.Module,
		preflight.Module,
		fx.Invoke(func(pf *preflight.Preflight) {
			p.preflight = pf
		}),
	}
}

func (p *PreflightCommand) Start() error {
	return p.preflight.Run(context.Background())
}

// NewPreflightCommand creates the preflight-only command.
func NewPreflightCommand() *PreflightCommand {
	return &PreflightCommand{}
}
