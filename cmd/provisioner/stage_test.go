package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/fx"
)

// MockStageModule is a mock implementation of the StageModule interface for testing
type MockStageModule struct {
	mock.Mock
}

func (m *MockStageModule) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStageModule) ShortDescription() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStageModule) LongDescription() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStageModule) FxModules() []fx.Option {
	args := m.Called()
	return args.Get(0).([]fx.Option)
}

func (m *MockStageModule) ConfigureCommand(cmd *cobra.Command) {
	m.Called(cmd)
}

func (m *MockStageModule) Start() error {
	args := m.Called()
	return args.Error(0)
}

func TestCreateStageCommand(t *testing.T) {
	mockModule := new(MockStageModule)

	mockModule.On("Name").Return("mock-stage")
	mockModule.On("ShortDescription").Return("Mock Stage Short Description")
	mockModule.On("LongDescription").Return("Mock Stage Long Description")
	mockModule.On("ConfigureCommand", mock.AnythingOfType("*cobra.Command")).Run(func(args mock.Arguments) {
		cmd := args.Get(0).(*cobra.Command)
		cmd.Run = func(cmd *cobra.Command, args []string) {}
	})

	cmd := CreateStageCommand(mockModule)

	assert.Equal(t, "mock-stage", cmd.Use)
	assert.Equal(t, "Mock Stage Short Description", cmd.Short)
	assert.Equal(t, "Mock Stage Long Description", cmd.Long)

	configFlag := cmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	debugFlag := cmd.PersistentFlags().Lookup("debug")
	assert.NotNil(t, debugFlag)
	assert.Equal(t, "d", debugFlag.Shorthand)

	mockModule.AssertCalled(t, "ConfigureCommand", mock.AnythingOfType("*cobra.Command"))
}

func TestStageModuleInterface(t *testing.T) {
	var _ StageModule = (*MockStageModule)(nil)
}

func TestAllStagesRegistered(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Use)
	}

	for _, want := range []string{"provision", "preflight", "sync-nodes", "sync-models", "run-tasks", "launch"} {
		assert.Contains(t, names, want)
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(assert.AnError), "non-exec errors map to a generic failure")
}
