// Package pipeline sequences the provisioning stages. Preflight and model
// sync errors stop the run; credential, node sync and task errors are logged
// and the run continues. The launch stage is last and blocks until the
// server exits.
package pipeline

import (
	"context"
	"fmt"

	"github.com/comfykit/provisioner/internal/provisioner/credential"
	"github.com/comfykit/provisioner/internal/provisioner/launch"
	"github.com/comfykit/provisioner/internal/provisioner/modelsync"
	"github.com/comfykit/provisioner/internal/provisioner/nodesync"
	"github.com/comfykit/provisioner/internal/provisioner/preflight"
	"github.com/comfykit/provisioner/internal/provisioner/taskrun"
	"github.com/comfykit/provisioner/pkg/logging"
)

// Stage is one step of the provisioning run.
type Stage interface {
	Run(ctx context.Context) error
}

type namedStage struct {
	name  string
	fatal bool
	stage Stage
}

type Pipeline struct {
	logger logging.Interface
	stages []namedStage
}

// NewPipeline wires the six stages in their fixed order.
func NewPipeline(
	logger logging.Interface,
	pf *preflight.Preflight,
	cred *credential.Configurator,
	nodes *nodesync.Syncer,
	models *modelsync.Syncer,
	tasks *taskrun.Runner,
	launcher *launch.Launcher,
) *Pipeline {
	return &Pipeline{
		logger: logger,
		stages: []namedStage{
			{name: "preflight", fatal: true, stage: pf},
			{name: "credential setup", fatal: false, stage: cred},
			{name: "node sync", fatal: false, stage: nodes},
			{name: "model sync", fatal: true, stage: models},
			{name: "custom tasks", fatal: false, stage: tasks},
			{name: "launch", fatal: true, stage: launcher},
		},
	}
}

// Run executes the stages in order, applying the per-stage error policy.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, s := range p.stages {
		p.logger.Infof("Stage: %s", s.name)

		err := s.stage.Run(ctx)
		if err == nil {
			continue
		}

		if s.fatal {
			return fmt.Errorf("%s failed: %w", s.name, err)
		}
		p.logger.WithField("stage", s.name).WithError(err).Error("Stage finished with errors, continuing")
	}

	return nil
}
