package gitcli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingPkg "github.com/comfykit/provisioner/pkg/testing"
)

func TestRepoName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "https with suffix", url: "https://github.com/acme/comfy-nodes.git", expected: "comfy-nodes"},
		{name: "https without suffix", url: "https://github.com/acme/comfy-nodes", expected: "comfy-nodes"},
		{name: "trailing slash", url: "https://github.com/acme/comfy-nodes/", expected: "comfy-nodes"},
		{name: "ssh style path", url: "git@github.com:acme/comfy-nodes.git", expected: "comfy-nodes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RepoName(tt.url))
		})
	}
}

func TestClone(t *testing.T) {
	runner := testingPkg.NewFakeRunner()
	client := NewClient(runner)

	err := client.Clone(context.Background(), "https://example.com/nodes.git", "/tmp/nodes")
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "git clone --recursive https://example.com/nodes.git /tmp/nodes", runner.Calls[0].String())
}

func TestCloneFailure(t *testing.T) {
	runner := testingPkg.NewFakeRunner()
	runner.FailOn["clone"] = errors.New("exit status 128")
	client := NewClient(runner)

	err := client.Clone(context.Background(), "https://example.com/nodes.git", "/tmp/nodes")
	assert.ErrorContains(t, err, "git clone")
}

func TestPullRunsInRepoDir(t *testing.T) {
	runner := testingPkg.NewFakeRunner()
	client := NewClient(runner)

	require.NoError(t, client.Pull(context.Background(), "/tmp/nodes"))

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "/tmp/nodes", runner.Calls[0].Dir)
	assert.Equal(t, "git pull --ff-only", runner.Calls[0].String())
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	client := NewClient(testingPkg.NewFakeRunner())

	assert.False(t, client.IsRepo(dir))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	assert.True(t, client.IsRepo(dir))
}

func TestInstalled(t *testing.T) {
	runner := testingPkg.NewFakeRunner()
	client := NewClient(runner)
	assert.True(t, client.Installed())

	runner.Missing["git"] = true
	assert.False(t, client.Installed())
}
