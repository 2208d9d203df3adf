package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitten/less4j/internal/config"
)

func writeFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lessel.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
format = "yaml"
jobs = 4
log_level = "debug"
compact = true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Format:   "yaml",
		Color:    "auto",
		Jobs:     4,
		LogLevel: "debug",
		Compact:  true,
	}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	var tests = []struct {
		data string
		err  string
	}{
		{data: `format = "xml"`, err: `invalid format "xml" (want text, yaml or json)`},
		{data: `color = "maybe"`, err: `invalid color "maybe" (want auto, on or off)`},
		{data: `jobs = -1`, err: `invalid jobs -1`},
		{data: `log_level = "loud"`, err: `invalid log_level`},
		{data: "formt = \"yaml\"\nzebra = 1", err: `unknown keys: formt, zebra`},
		{data: `format = `, err: `failed to parse TOML`},
	}

	for i, tt := range tests {
		_, err := config.Load(writeFile(t, tt.data))
		if assert.Error(t, err, "%d", i) {
			assert.Contains(t, err.Error(), tt.err, "%d", i)
		}
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}
