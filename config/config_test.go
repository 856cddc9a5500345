package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/semnif/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "turtle", cfg.Export.Format)
	assert.Equal(t, export.FormatTurtle, cfg.Format())
	assert.Equal(t, 200*time.Millisecond, cfg.Input.Debounce)
	assert.Equal(t, "annotation.batch", cfg.NATS.InputSubject)
	assert.Equal(t, "annotation.export.rdf", cfg.NATS.OutputSubject)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "format alias",
			modify:  func(c *Config) { c.Export.Format = "nt" },
			wantErr: false,
		},
		{
			name:    "unsupported format",
			modify:  func(c *Config) { c.Export.Format = "jsonld" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Input.Debounce = -time.Second },
			wantErr: true,
		},
		{
			name:    "missing input subject",
			modify:  func(c *Config) { c.NATS.InputSubject = "" },
			wantErr: true,
		},
		{
			name:    "missing output subject",
			modify:  func(c *Config) { c.NATS.OutputSubject = "" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "semnif.yaml")

	cfg := DefaultConfig()
	cfg.Export.Format = "rdfxml"
	cfg.Input.Patterns = []string{"records/**/*.json"}
	cfg.Metrics.Addr = ":9100"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFile_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semnif.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  format: ntriples\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ntriples", cfg.Export.Format)
	assert.Equal(t, "annotation.batch", cfg.NATS.InputSubject)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export: [unclosed"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{
		Export: ExportConfig{Format: "rdfxml", Output: "out.rdf"},
		Input:  InputConfig{Patterns: []string{"*.yaml"}, Debounce: time.Second},
		NATS:   NATSConfig{URL: "nats://nats:4222", QueueGroup: "nif"},
		Log:    LogConfig{Level: "debug"},
	})

	assert.Equal(t, "rdfxml", cfg.Export.Format)
	assert.Equal(t, "out.rdf", cfg.Export.Output)
	assert.Equal(t, []string{"*.yaml"}, cfg.Input.Patterns)
	assert.Equal(t, time.Second, cfg.Input.Debounce)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, "annotation.batch", cfg.NATS.InputSubject)
	assert.Equal(t, "nif", cfg.NATS.QueueGroup)
	assert.Equal(t, "debug", cfg.Log.Level)

	cfg.Merge(nil)
	assert.Equal(t, "rdfxml", cfg.Export.Format)
}

func testLoader(t *testing.T, home, work string) (*Loader, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	l := NewLoader(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	l.homeDir = func() (string, error) { return home, nil }
	l.workDir = func() (string, error) { return work, nil }
	return l, &logs
}

func TestLoader_Layers(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	sub := filepath.Join(work, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))

	userPath := filepath.Join(home, UserConfigDir, UserConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0755))
	require.NoError(t, os.WriteFile(userPath, []byte("export:\n  format: ntriples\nlog:\n  level: warn\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(work, ProjectConfigFile), []byte("export:\n  format: rdfxml\n"), 0644))

	l, _ := testLoader(t, home, sub)

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "rdfxml", cfg.Export.Format)
	assert.Equal(t, "warn", cfg.Log.Level)

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("export:\n  format: turtle\n"), 0644))
	cfg, err = l.Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "turtle", cfg.Export.Format)
}

func TestLoader_Defaults(t *testing.T) {
	l, logs := testLoader(t, t.TempDir(), t.TempDir())

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Contains(t, logs.String(), "No project config found")
}

func TestLoader_InvalidResult(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ProjectConfigFile), []byte("export:\n  format: n3\n"), 0644))

	l, _ := testLoader(t, t.TempDir(), work)
	_, err := l.Load("")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestLoader_MissingExplicit(t *testing.T) {
	l, _ := testLoader(t, t.TempDir(), t.TempDir())
	_, err := l.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	l, _ := testLoader(t, home, t.TempDir())

	require.NoError(t, l.EnsureUserConfig())
	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0644))
	require.NoError(t, l.EnsureUserConfig())

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("SEMNIF_TEST_NATS_HOST", "nats.internal")
	path := filepath.Join(t.TempDir(), "semnif.yaml")
	content := "nats:\n  url: nats://${SEMNIF_TEST_NATS_HOST}:${SEMNIF_TEST_NATS_PORT:-4222}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "nats://nats.internal:4222", cfg.NATS.URL)
}
