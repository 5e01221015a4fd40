package testing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/comfykit/provisioner/pkg/command"
)

// FakeRunner is a scripted command.Runner that records invocations instead
// of spawning processes.
type FakeRunner struct {
	mu sync.Mutex

	// Calls records every Run/Output invocation in order.
	Calls []command.Command

	// Missing lists binary names LookPath should report as not installed.
	Missing map[string]bool

	// FailOn maps a substring of the rendered command line to the error
	// the fake returns for matching invocations.
	FailOn map[string]error

	// Outputs maps a substring of the rendered command line to the
	// combined output Output returns for matching invocations.
	Outputs map[string]string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Missing: make(map[string]bool),
		FailOn:  make(map[string]error),
		Outputs: make(map[string]string),
	}
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

func (f *FakeRunner) Run(ctx context.Context, cmd command.Command) error {
	_, err := f.record(cmd)
	return err
}

func (f *FakeRunner) Output(ctx context.Context, cmd command.Command) (string, error) {
	return f.record(cmd)
}

func (f *FakeRunner) record(cmd command.Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, cmd)

	line := cmd.String()
	for substr, err := range f.FailOn {
		if substr != "" && strings.Contains(line, substr) {
			return "", err
		}
	}
	for substr, out := range f.Outputs {
		if substr != "" && strings.Contains(line, substr) {
			return out, nil
		}
	}
	return "", nil
}

// CommandLines renders all recorded calls, mainly for assertions.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}
