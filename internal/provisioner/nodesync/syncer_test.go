package nodesync

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comfykit/provisioner/pkg/gitcli"
	"github.com/comfykit/provisioner/pkg/logging"
	testingPkg "github.com/comfykit/provisioner/pkg/testing"
)

func newSyncer(t *testing.T, fs afero.Fs, runner *testingPkg.FakeRunner, config *Config) *Syncer {
	t.Helper()

	config.AnotherLogger = logging.NewNop()
	if config.NodesDir == "" {
		config.NodesDir = "/workspace/ComfyUI/custom_nodes"
	}

	s, err := NewSyncer(config, fs, gitcli.NewClient(runner), runner)
	require.NoError(t, err)
	return s
}

func TestRunNoNodesConfigured(t *testing.T) {
	runner := testingPkg.NewFakeRunner()
	s := newSyncer(t, afero.NewMemMapFs(), runner, &Config{})

	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, runner.Calls)
}

func TestRunClonesMissingNodes(t *testing.T) {
	runner := testingPkg.NewFakeRunner()
	s := newSyncer(t, afero.NewMemMapFs(), runner, &Config{
		Nodes: "https://github.com/acme/comfy-extras.git\n# a comment\n\nhttps://github.com/acme/other-nodes\n",
	})

	require.NoError(t, s.Run(context.Background()))

	lines := runner.CommandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "git clone --recursive https://github.com/acme/comfy-extras.git /workspace/ComfyUI/custom_nodes/comfy-extras", lines[0])
	assert.Equal(t, "git clone --recursive https://github.com/acme/other-nodes /workspace/ComfyUI/custom_nodes/other-nodes", lines[1])
}

func TestRunSkipsExistingNode(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/workspace/ComfyUI/custom_nodes/comfy-extras", 0o755))

	runner := testingPkg.NewFakeRunner()
	s := newSyncer(t, fs, runner, &Config{
		Nodes: "https://github.com/acme/comfy-extras.git",
	})

	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, runner.Calls, "existing node must not be cloned")
}

func TestRunPullsExistingNodeWhenUpdateEnabled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/workspace/ComfyUI/custom_nodes/comfy-extras", 0o755))

	runner := testingPkg.NewFakeRunner()
	s := newSyncer(t, fs, runner, &Config{
		Nodes:       "https://github.com/acme/comfy-extras.git",
		UpdateNodes: true,
	})

	require.NoError(t, s.Run(context.Background()))

	lines := runner.CommandLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "git pull --ff-only", lines[0])
	assert.Equal(t, "/workspace/ComfyUI/custom_nodes/comfy-extras", runner.Calls[0].Dir)
}

func TestRunInstallsRequirementsAfterClone(t *testing.T) {
	fs := afero.NewMemMapFs()
	// the "clone" is faked, so pre-seed the requirements file
	require.NoError(t, afero.WriteFile(fs,
		"/workspace/ComfyUI/custom_nodes/comfy-extras/requirements.txt", []byte("torch\n"), 0o644))

	runner := testingPkg.NewFakeRunner()
	s := newSyncer(t, fs, runner, &Config{
		Nodes:               "https://github.com/acme/comfy-extras.git",
		InstallRequirements: true,
	})

	require.NoError(t, s.Run(context.Background()))

	lines := runner.CommandLines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "git clone")
	assert.Equal(t, "pip install -r /workspace/ComfyUI/custom_nodes/comfy-extras/requirements.txt", lines[1])
}

func TestRunDependencyInstallFailureDoesNotHalt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs,
		"/workspace/ComfyUI/custom_nodes/comfy-extras/requirements.txt", []byte("torch\n"), 0o644))

	runner := testingPkg.NewFakeRunner()
	runner.FailOn["pip install"] = errors.New("exit status 1")

	s := newSyncer(t, fs, runner, &Config{
		Nodes: strings.Join([]string{
			"https://github.com/acme/comfy-extras.git",
			"https://github.com/acme/other-nodes.git",
		}, "\n"),
		InstallRequirements: true,
	})

	// dependency failure is logged, not propagated; both nodes clone
	require.NoError(t, s.Run(context.Background()))

	var clones int
	for _, line := range runner.CommandLines() {
		if strings.Contains(line, "git clone") {
			clones++
		}
	}
	assert.Equal(t, 2, clones)
}

func TestRunCloneFailureContinuesAndAggregates(t *testing.T) {
	runner := testingPkg.NewFakeRunner()
	runner.FailOn["bad-node"] = errors.New("exit status 128")

	s := newSyncer(t, afero.NewMemMapFs(), runner, &Config{
		Nodes: strings.Join([]string{
			"https://github.com/acme/bad-node.git",
			"https://github.com/acme/good-node.git",
		}, "\n"),
	})

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad-node")

	var cloned []string
	for _, line := range runner.CommandLines() {
		if strings.Contains(line, "git clone") {
			cloned = append(cloned, line)
		}
	}
	require.Len(t, cloned, 2, "failure on one node must not stop the others")
}

func TestConfigFromViper(t *testing.T) {
	v := viper.New()
	v.Set("install_dir", "/opt/server")
	v.Set("update_nodes", true)
	v.Set("nodes", "https://a.git")

	config, err := NewNodeSyncConfig(WithViper(v))
	require.NoError(t, err)

	assert.Equal(t, "/opt/server/custom_nodes", config.NodesDir)
	assert.True(t, config.UpdateNodes)
	assert.True(t, config.InstallRequirements)
	assert.NoError(t, config.Validate())
}

func TestConfigValidateRequiresNodesDir(t *testing.T) {
	config, err := NewNodeSyncConfig()
	require.NoError(t, err)
	assert.Error(t, config.Validate())
}
