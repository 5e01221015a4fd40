package hub

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingPkg "github.com/comfykit/provisioner/pkg/testing"
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
			name: "config with logger",
			options: []Option{
				WithLogger(testingPkg.SetupMockLogger()),
			},
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
			name: "nil logger",
			options: []Option{
				WithLogger(nil),
			},
			expectError: true,
		},
		{
			name: "empty endpoint",
			options: []Option{
				WithEndpoint(""),
			},
			expectError: true,
		},
		{
			name: "negative retries",
			options: []Option{
				WithRetryConfig(-1, time.Second),
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

func TestConfigDefaults(t *testing.T) {
	config, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, config.Endpoint)
	assert.Equal(t, DefaultRevision, config.Revision)
	assert.Equal(t, DefaultMaxRetries, config.MaxRetries)
	assert.NoError(t, config.Validate())
}

func TestConfigFromViper(t *testing.T) {
	v := viper.New()
	v.Set("hub.endpoint", "https://hub.internal")
	v.Set("hub.revision", "refs/pr/1")
	v.Set("hub.max_retries", 2)

	config, err := NewConfig(WithViper(v))
	require.NoError(t, err)

	assert.Equal(t, "https://hub.internal", config.Endpoint)
	assert.Equal(t, "refs/pr/1", config.Revision)
	assert.Equal(t, 2, config.MaxRetries)
}

func TestConfigTopLevelTokenWins(t *testing.T) {
	v := viper.New()
	v.Set("hub.token", "from-hub-key")
	v.Set("hf_token", "from-top-level")

	config, err := NewConfig(WithViper(v))
	require.NoError(t, err)

	assert.Equal(t, "from-top-level", config.Token)
}

func TestConfigValidate(t *testing.T) {
	config, err := NewConfig()
	require.NoError(t, err)

	config.Endpoint = ""
	assert.Error(t, config.Validate())
}
