package launch

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comfykit/provisioner/pkg/logging"
	pkgtesting "github.com/comfykit/provisioner/pkg/testing"
)

func newTestLauncher(t *testing.T, config *Config, fake *pkgtesting.FakeRunner) *Launcher {
	t.Helper()

	config.AnotherLogger = logging.NewNop()
	l, err := NewLauncher(config, fake)
	require.NoError(t, err)
	return l
}

func TestRunDisabledDoesNotStart(t *testing.T) {
	fake := pkgtesting.NewFakeRunner()
	l := newTestLauncher(t, &Config{
		StartServer: false,
		WorkDir:     "/workspace/ComfyUI",
		Server:      ServerConfig{Command: DefaultServerCommand, Host: DefaultServerHost, Port: DefaultServerPort},
	}, fake)

	require.NoError(t, l.Run(context.Background()))
	assert.Empty(t, fake.Calls)
}

func TestRunStartsServerInForeground(t *testing.T) {
	fake := pkgtesting.NewFakeRunner()
	l := newTestLauncher(t, &Config{
		StartServer: true,
		WorkDir:     "/workspace/ComfyUI",
		Server: ServerConfig{
			Command: "python3 main.py",
			Host:    "0.0.0.0",
			Port:    8188,
			Args:    []string{"--disable-auto-launch"},
		},
	}, fake)

	require.NoError(t, l.Run(context.Background()))

	require.Len(t, fake.Calls, 1)
	cmd := fake.Calls[0]
	assert.Equal(t, "python3", cmd.Name)
	assert.Equal(t, []string{"main.py", "--listen", "0.0.0.0", "--port", "8188", "--disable-auto-launch"}, cmd.Args)
	assert.Equal(t, "/workspace/ComfyUI", cmd.Dir)
}

func TestRunPropagatesServerExit(t *testing.T) {
	fake := pkgtesting.NewFakeRunner()
	fake.FailOn["main.py"] = assert.AnError

	l := newTestLauncher(t, &Config{
		StartServer: true,
		WorkDir:     "/workspace/ComfyUI",
		Server:      ServerConfig{Command: "python3 main.py", Host: "0.0.0.0", Port: 8188},
	}, fake)

	assert.Error(t, l.Run(context.Background()))
}

func TestRunEmptyCommand(t *testing.T) {
	fake := pkgtesting.NewFakeRunner()
	l := newTestLauncher(t, &Config{
		StartServer: true,
		WorkDir:     "/workspace/ComfyUI",
		Server:      ServerConfig{Command: "   ", Host: "0.0.0.0", Port: 8188},
	}, fake)

	assert.Error(t, l.Run(context.Background()))
	assert.Empty(t, fake.Calls)
}

func TestConfigFromViper(t *testing.T) {
	v := viper.New()
	v.Set("install_dir", "/opt/server")

	config, err := NewLaunchConfig(WithViper(v))
	require.NoError(t, err)

	assert.True(t, config.StartServer)
	assert.Equal(t, "/opt/server", config.WorkDir)
	assert.Equal(t, DefaultServerCommand, config.Server.Command)
	assert.Equal(t, DefaultServerHost, config.Server.Host)
	assert.Equal(t, DefaultServerPort, config.Server.Port)
	assert.NoError(t, config.Validate())
}

func TestConfigStartServerOverride(t *testing.T) {
	v := viper.New()
	v.Set("install_dir", "/opt/server")
	v.Set("start_server", false)
	v.Set("server.port", 9000)

	config, err := NewLaunchConfig(WithViper(v))
	require.NoError(t, err)

	assert.False(t, config.StartServer)
	assert.Equal(t, 9000, config.Server.Port)
}
