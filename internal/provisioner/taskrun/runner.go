// Package taskrun executes the user-supplied shell command lines after the
// assets are in place and before the server starts. Tasks run in order, each
// through the system shell; a failing task is reported and the remaining
// tasks still run.
package taskrun

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/comfykit/provisioner/internal/provisioner/textlist"
	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

type Runner struct {
	logger logging.Interface
	Config Config
	runner command.Runner
}

// NewRunner constructs the task run stage from the given configuration.
func NewRunner(config *Config, runner command.Runner) (*Runner, error) {
	return &Runner{
		logger: config.AnotherLogger,
		Config: *config,
		runner: runner,
	}, nil
}

// Run executes every configured task in order. The returned error aggregates
// per-task failures; callers treat it as advisory since tasks are best-effort.
func (r *Runner) Run(ctx context.Context) error {
	tasks := textlist.PipeSeparated(r.Config.Tasks)
	if len(tasks) == 0 {
		r.logger.Info("No custom tasks configured")
		return nil
	}

	var result *multierror.Error
	for i, task := range tasks {
		r.logger.Infof("Running task %d/%d: %s", i+1, len(tasks), task)

		err := r.runner.Run(ctx, command.Command{
			Name: "sh",
			Args: []string{"-c", task},
			Dir:  r.Config.WorkDir,
		})
		if err != nil {
			r.logger.WithField("task", task).WithError(err).Errorf(
				"Task exited with code %d", command.ExitCode(err))
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
