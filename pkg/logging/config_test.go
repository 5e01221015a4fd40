package logging

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		options     []Option
		expectError bool
	}{
		{
			name:        "empty config",
			options:     []Option{},
			expectError: false,
		},
		{
			name: "config with viper",
			options: []Option{
				WithViper(viper.New()),
			},
			expectError: false,
		},
		{
			name: "nil option is skipped",
			options: []Option{
				nil,
				WithViper(viper.New()),
			},
			expectError: false,
		},
		{
			name: "nil viper",
			options: []Option{
				WithViper(nil),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewConfig(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, config)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, config)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	c := &Config{}
	assert.NoError(t, c.Validate())

	c.MaxSize = -1
	assert.Error(t, c.Validate())

	c.MaxSize = 0
	c.Level = Level("silly")
	assert.Error(t, c.Validate())
}

func TestConfigFromViperKey(t *testing.T) {
	v := viper.New()
	v.Set("logging.debug", true)
	v.Set("logging.level", "WARN")
	v.Set("logging.disableConsoleOutput", true)

	config, err := NewConfig(WithViper(v))
	require.NoError(t, err)

	assert.True(t, config.Debug)
	assert.Equal(t, LevelWarn, config.Level)
	assert.True(t, config.DisableConsoleOutput)
}

func TestNewLoggerFromDefaults(t *testing.T) {
	config, err := NewConfig()
	require.NoError(t, err)

	logger, err := NewLogger(config)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
