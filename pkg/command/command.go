// Package command wraps os/exec behind a small Runner interface so that
// every stage that shells out (git, aria2c, pip, custom tasks, the server
// launch) can be exercised in tests without spawning processes.
package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external command invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env entries are appended to the current process environment.
	Env []string

	// Optional stream overrides. Run attaches the process stdout/stderr
	// to these; nil streams inherit the provisioner's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the invocation for log lines.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes external commands.
type Runner interface {
	// LookPath reports the path of an executable, or an error when the
	// binary is not installed.
	LookPath(name string) (string, error)

	// Run executes the command in the foreground, streaming its output.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its combined output.
	Output(ctx context.Context, cmd Command) (string, error)
}

type execRunner struct{}

// NewRunner returns the os/exec backed Runner.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Run(ctx context.Context, cmd Command) error {
	c := build(ctx, cmd)

	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	return c.Run()
}

func (execRunner) Output(ctx context.Context, cmd Command) (string, error) {
	out, err := build(ctx, cmd).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

// ExitCode extracts the process exit status from a Run/Output error.
// It returns -1 when the command never ran (e.g. binary not found).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
