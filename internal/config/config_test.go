package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, SourceCSV, cfg.Source.Kind)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, "vi", cfg.Render.Locale)
	assert.Equal(t, 600.0, cfg.Render.GroupWidth)
	assert.Equal(t, ":8080", cfg.Address())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults only",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, DataCacheDuration, cfg.Source.CacheTTL)
			},
		},
		{
			name: "file overlays defaults",
			file: `
server:
  port: 9090
source:
  kind: file
  path: /data/sales.xlsx
  cache_ttl: 1m
render:
  locale: en
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "untouched keys keep defaults")
				assert.Equal(t, SourceFile, cfg.Source.Kind)
				assert.Equal(t, "/data/sales.xlsx", cfg.Source.Path)
				assert.Equal(t, time.Minute, cfg.Source.CacheTTL)
				assert.Equal(t, "en", cfg.Render.Locale)
			},
		},
		{
			name: "environment wins over file",
			file: "server:\n  port: 9090\n",
			env: map[string]string{
				"SALES_SERVER_PORT":              "7070",
				"SALES_SOURCE_MAX_RETRIES":       "5",
				"SALES_LOGGING_LEVEL":            "debug",
				"SALES_SECURITY_ALLOWED_ORIGINS": "http://a.example,http://b.example",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, 5, cfg.Source.MaxRetries)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
			},
		},
		{
			name:    "invalid locale",
			env:     map[string]string{"SALES_RENDER_LOCALE": "fr"},
			wantErr: true,
		},
		{
			name:    "sheets without credentials",
			env:     map[string]string{"SALES_SOURCE_KIND": "sheets", "SALES_SOURCE_SHEET_ID": "abc"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			content := tt.file
			if content == "" {
				// an empty mapping keeps every default
				content = "{}"
			}
			path := writeConfigFile(t, content)

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown source kind", func(c *Config) { c.Source.Kind = "ftp" }, true},
		{"csv without url", func(c *Config) { c.Source.URL = "" }, true},
		{"bad url", func(c *Config) { c.Source.URL = "not a url" }, true},
		{"file without path", func(c *Config) { c.Source.Kind = SourceFile }, true},
		{"sheets with api key", func(c *Config) {
			c.Source.Kind = SourceSheets
			c.Source.SheetID = "abc"
			c.Source.APIKey = "key"
		}, false},
		{"retry bounds inverted", func(c *Config) { c.Source.RetryMin = time.Minute }, true},
		{"bad timezone", func(c *Config) { c.Render.Timezone = "Mars/Base" }, true},
		{"bad log output", func(c *Config) { c.Logging.Output = "syslog" }, true},
		{"traces exporter", func(c *Config) { c.Telemetry.TracesExporter = "stdout" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Render.Timezone = "Asia/Ho_Chi_Minh"
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Location().String())
}
