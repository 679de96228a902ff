package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_SeedFlag(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "meadow.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"seed": 7}`), 0o600))

	tests := []struct {
		name string
		args []string
		want uint64
	}{
		{"default seed kept", nil, 1},
		{"explicit zero", []string{"-seed", "0"}, 0},
		{"explicit value", []string{"-seed=42"}, 42},
		{"config file seed kept", []string{"-config", configFile}, 7},
		{"flag beats config file", []string{"-config", configFile, "-seed", "0"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			require.NoError(t, err)

			cfg, err := loadConfig(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Seed)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	for _, args := range [][]string{{"-seed", "-1"}, {"-nope"}} {
		_, err := parseFlags(args)
		assert.Error(t, err, "%v", args)
	}
}
