package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comfykit/provisioner/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:     "provisioner",
	Short:   "Provision a generative-AI inference server",
	Long:    "Provisioner prepares a ComfyUI-style inference server in one shot: it verifies the installation, registers credentials, syncs plugin nodes and model files, runs custom setup tasks, and starts the server.",
	Version: fmt.Sprintf("gitVersion=%s, gitCommit=%s", version.GitVersion, version.GitCommit),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(CreateStageCommand(NewProvisionCommand()))
	rootCmd.AddCommand(CreateStageCommand(NewPreflightCommand()))
	rootCmd.AddCommand(CreateStageCommand(NewSyncNodesCommand()))
	rootCmd.AddCommand(CreateStageCommand(NewSyncModelsCommand()))
	rootCmd.AddCommand(CreateStageCommand(NewRunTasksCommand()))
	rootCmd.AddCommand(CreateStageCommand(NewLaunchCommand()))
}
