package pipeline

import (
	"go.uber.org/fx"

	"github.com/comfykit/provisioner/internal/provisioner/credential"
	"github.com/comfykit/provisioner/internal/provisioner/launch"
	"github.com/comfykit/provisioner/internal/provisioner/modelsync"
	"github.com/comfykit/provisioner/internal/provisioner/nodesync"
	"github.com/comfykit/provisioner/internal/provisioner/preflight"
	"github.com/comfykit/provisioner/internal/provisioner/taskrun"
	"github.com/comfykit/provisioner/pkg/logging"
)

type pipelineParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Preflight     *preflight.Preflight
	Credential    *credential.Configurator
	NodeSync      *nodesync.Syncer
	ModelSync     *modelsync.Syncer
	TaskRun       *taskrun.Runner
	Launch        *launch.Launcher
}

var Module = fx.Provide(
	func(params pipelineParams) *Pipeline {
		return NewPipeline(
			params.AnotherLogger,
			params.Preflight,
			params.Credential,
			params.NodeSync,
			params.ModelSync,
			params.TaskRun,
			params.Launch,
		)
	})
