package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ccmdump.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_ParsesSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccmdump.yaml")
	data := `
log:
  level: DEBUG
  format: yaml
seed:
  providers:
    - name: Remote
      collections:
        - name: Team
          calendars:
            - name: Releases
              color: "rgb(0, 128, 255)"
              events:
                - name: Ship it
                  description: v1.0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	require.Len(t, cfg.Seed.Providers, 1)
	cal := cfg.Seed.Providers[0].Collections[0].Calendars[0]
	assert.Equal(t, "Releases", cal.Name)
	assert.Equal(t, "rgb(0, 128, 255)", cal.Color)
	assert.Equal(t, "v1.0", cal.Events[0].Description)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [unterminated"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSave_Errors(t *testing.T) {
	assert.Error(t, Save("", DefaultConfig()))
	assert.Error(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         LogConfig
		wantLevel  string
		wantFormat string
	}{
		{"empty", LogConfig{}, "info", "text"},
		{"json", LogConfig{Level: "warn", Format: "JSON"}, "warn", "json"},
		{"unknown level", LogConfig{Level: "verbose", Format: "text"}, "info", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Log: tt.in}
			cfg.Normalize()
			assert.Equal(t, tt.wantLevel, cfg.Log.Level)
			assert.Equal(t, tt.wantFormat, cfg.Log.Format)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Log: LogConfig{Level: "warn", Format: "json"}}

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "id", "Cal1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"id":"Cal1"`)
}
