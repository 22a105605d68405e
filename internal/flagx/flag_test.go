package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "tasks", "list"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "subcommand and positional args are dropped",
			args:         []string{"task", "show", "64f1", "-a", "http://api"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "http://api"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"--status", "pending", "--search=milk"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag",
			args:         []string{"-c", "-t", "5"},
			allowedFlags: []string{"-c", "-t"},
			want:         []string{"-c", "-t", "5"},
		},
		{
			name:         "double dash stops scanning",
			args:         []string{"-a", "http://x", "--", "-c", "ignored.json"},
			allowedFlags: []string{"-a", "-c"},
			want:         []string{"-a", "http://x"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}))
	})

	t.Run("long --config=", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigPath([]string{"tasks", "--config=/path/long.json"}))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, ConfigPath([]string{"-a", "http://api", "login"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "/2.json", ConfigPath([]string{"-c", "/1.json", "-config", "/2.json"}))
	})
}
