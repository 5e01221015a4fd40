// Package launch starts the inference server in the foreground once
// provisioning is done. The provisioner does not outlive the server: its
// stdio is inherited and its exit status becomes ours.
package launch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/comfykit/provisioner/pkg/command"
	"github.com/comfykit/provisioner/pkg/logging"
)

type Launcher struct {
	logger logging.Interface
	Config Config
	runner command.Runner
}

// NewLauncher constructs the launch stage from the given configuration.
func NewLauncher(config *Config, runner command.Runner) (*Launcher, error) {
	return &Launcher{
		logger: config.AnotherLogger,
		Config: *config,
		runner: runner,
	}, nil
}

// Run starts the server and blocks until it exits. When the start flag is
// off it logs completion and returns nil.
func (l *Launcher) Run(ctx context.Context) error {
	if !l.Config.StartServer {
		l.logger.Info("Provisioning complete, server start disabled")
		return nil
	}

	cmd, err := l.serverCommand()
	if err != nil {
		return err
	}

	l.logger.Infof("Starting server: %s", cmd.String())
	return l.runner.Run(ctx, cmd)
}

// serverCommand assembles the foreground invocation: the configured command
// line, the listen address flags, then any extra args verbatim.
func (l *Launcher) serverCommand() (command.Command, error) {
	fields := strings.Fields(l.Config.Server.Command)
	if len(fields) == 0 {
		return command.Command{}, fmt.Errorf("server command is empty")
	}

	args := append(fields[1:],
		"--listen", l.Config.Server.Host,
		"--port", strconv.Itoa(l.Config.Server.Port))
	args = append(args, l.Config.Server.Args...)

	return command.Command{
		Name: fields[0],
		Args: args,
		Dir:  l.Config.WorkDir,
	}, nil
}
