package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/modelsync"
	"github.com/comfykit/provisioner/pkg/afero"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/fetch"
	"github.com/comfykit/provisioner/pkg/hub"
	"github.com/comfykit/provisioner/pkg/logging"
)

// SyncModelsCommand downloads the configured model files only.
type SyncModelsCommand struct {
	syncer *modelsync.Syncer
}

func (s *SyncModelsCommand) Name() string {
	return "sync-models"
}

func (s *SyncModelsCommand) ShortDescription() string {
	return "Download the configured model files"
}

func (s *SyncModelsCommand) LongDescription() string {
	return "Downloads every configured model entry (hub, marketplace or direct URL) into the models directory, skipping files that are already present."
}

func (s *SyncModelsCommand) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runStageCommand(cmd, s, s.Start)
	}
}

func (s *SyncModelsCommand) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		command.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		logging.ModuleNamed("hub_logger"),
		fetch.Module,
		hub.Module,
		modelsync.Module,
		fx.Invoke(func(sync *modelsync.Syncer) {
			s.syncer = sync
		}),
	}
}

func (s *SyncModelsCommand) Start() error {
	return s.syncer.Run(context.Background())
}

// NewSyncModelsCommand creates the model-sync-only command.
func NewSyncModelsCommand() *SyncModelsCommand {
	return &SyncModelsCommand{}
}
