package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/minivue/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	require.Equal(t, DefaultPort, cfg.Server.Port)
	require.Equal(t, DefaultHost, cfg.Server.Host)
	require.Equal(t, DefaultMetricsPath, cfg.Server.MetricsPath)
	require.Equal(t, DefaultQueueSize, cfg.Server.QueueSize)
	require.Equal(t, "-", cfg.Snapshot.Out)
	require.Equal(t, DefaultRegion, cfg.S3.Region)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	require.Error(t, err)
	require.True(t, errors.HasCode(err, "E141"))

	configYAML := `server:
  host: 0.0.0.0
  port: 8080
log:
  level: debug
  format: json
snapshot:
  out: s3://bucket/renders
s3:
  endpoint: http://localhost:9000
  path_style: true
`
	path := filepath.Join(tmpDir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, DefaultMetricsPath, cfg.Server.MetricsPath, "unset keys keep defaults")
	require.Equal(t, DefaultQueueSize, cfg.Server.QueueSize)
	require.Equal(t, slog.LevelDebug, cfg.Level())
	require.Equal(t, "s3://bucket/renders", cfg.Snapshot.Out)
	require.Equal(t, DefaultRegion, cfg.S3.Region)
	require.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	require.True(t, cfg.S3.PathStyle)
	require.Equal(t, path, cfg.Path())
	require.Equal(t, tmpDir, cfg.Dir())
	require.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)
	require.True(t, errors.HasCode(err, "E120"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative queue", func(c *Config) { c.Server.QueueSize = -1 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, errors.HasCode(err, "E122"))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := New()
	cfg.Server.Port = 4000
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 4000, loaded.Server.Port)

	loaded.Log.Format = "json"
	require.NoError(t, loaded.Save())

	again, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "json", again.Log.Format)

	require.Error(t, New().Save(), "no path set")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.Log.Format = "json"
	cfg.NewLogger(&buf).Info("hello", "k", 1)
	require.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())

	buf.Reset()
	cfg.Log.Format = "text"
	cfg.Log.Level = "warn"
	logger := cfg.NewLogger(&buf)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "kept")
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	_, err := FindProjectRoot(nested)
	require.Error(t, err)

	require.NoError(t, New().SaveTo(filepath.Join(root, ConfigFileName)))
	require.True(t, Exists(root))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.Equal(t, root, found)
}
