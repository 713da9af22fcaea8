package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-k", testKey, "-s", "secret",
				"-b", "11", "-w", "3", "-f", "seed.yaml", "-l", "text",
			},
			expected: &Config{
				ListenAddr:    "127.0.0.1:9090",
				EncryptionKey: testKey,
				SigningSecret: "secret",
				BcryptCost:    11,
				HashWorkers:   3,
				SeedFile:      "seed.yaml",
				LogFormat:     "text",
			},
		},
		{
			name:     "config flag is ignored",
			args:     []string{"cmd", "-c", "conf.json", "-a", ":1"},
			expected: &Config{ListenAddr: ":1"},
		},
		{
			name:        "bad int",
			args:        []string{"cmd", "-b", "ten"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
