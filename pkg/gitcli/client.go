// Package gitcli wraps the git command line for cloning and refreshing
// plugin repositories.
package gitcli

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/comfykit/provisioner/pkg/command"
)

// Client runs git operations through a command.Runner.
type Client struct {
	runner command.Runner
}

// NewClient creates a git client backed by the given runner.
func NewClient(runner command.Runner) *Client {
	return &Client{runner: runner}
}

// Installed reports whether the git binary is on PATH.
func (c *Client) Installed() bool {
	_, err := c.runner.LookPath("git")
	return err == nil
}

// Clone clones repoURL into destDir.
func (c *Client) Clone(ctx context.Context, repoURL, destDir string) error {
	out, err := c.runner.Output(ctx, command.Command{
		Name: "git",
		Args: []string{"clone", "--recursive", repoURL, destDir},
	})
	if err != nil {
		return fmt.Errorf("git clone %s: %w: %s", repoURL, err, out)
	}
	return nil
}

// Pull fast-forwards the repository checked out in repoDir.
func (c *Client) Pull(ctx context.Context, repoDir string) error {
	out, err := c.runner.Output(ctx, command.Command{
		Name: "git",
		Args: []string{"pull", "--ff-only"},
		Dir:  repoDir,
	})
	if err != nil {
		return fmt.Errorf("git pull in %s: %w: %s", repoDir, err, out)
	}
	return nil
}

// IsRepo reports whether dir is a git work tree.
func (c *Client) IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// RepoName derives the local directory name for a repository URL: the last
// path segment with any ".git" suffix removed.
func RepoName(repoURL string) string {
	name := path.Base(strings.TrimRight(repoURL, "/"))
	name = strings.TrimSuffix(name, ".git")
	return name
}
