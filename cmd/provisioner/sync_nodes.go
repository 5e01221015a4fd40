package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/nodesync"
	"github.com/comfykit/provisioner/pkg/afero"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/logging"
)

// SyncNodesCommand syncs the plugin repositories only.
type SyncNodesCommand struct {
	syncer *nodesync.Syncer
}

func (s *SyncNodesCommand) Name() string {
	return "sync-nodes"
}

func (s *SyncNodesCommand) ShortDescription() string {
	return "Clone or update the configured plugin nodes"
}

func (s *SyncNodesCommand) LongDescription() string {
	return "Clones every configured plugin repository into the nodes directory, pulling already present ones when update_nodes is on, and installs each node's Python requirements."
}

func (s *SyncNodesCommand) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runStageCommand(cmd, s, s.Start)
	}
}

func (s *SyncNodesCommand) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		command.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		gitcli.Module,
		nodesync.Module,
		fx.Invoke(func(sync *nodesync.Syncer) {
			s.syncer = sync
		}),
	}
}

func (s *SyncNodesCommand) Start() error {
	return s.syncer.Run(context.Background())
}

// NewSyncNodesCommand creates the node-sync-only command.
func NewSyncNodesCommand() *SyncNodesCommand {
	return &SyncNodesCommand{}
}
