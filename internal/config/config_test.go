package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Web: WebConfig{
			LibraryAPIURL: "http://localhost:5000",
			LibraryAPIRPS: 10,
			BooksPerPage:  5,
			HomeBooks:     8,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"INFO", true},
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_WebSection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative api url", func(c *Config) { c.Web.LibraryAPIURL = "/api" }},
		{"ftp api url", func(c *Config) { c.Web.LibraryAPIURL = "ftp://example.com" }},
		{"zero page size", func(c *Config) { c.Web.BooksPerPage = 0 }},
		{"negative home books", func(c *Config) { c.Web.HomeBooks = -1 }},
		{"zero rps", func(c *Config) { c.Web.LibraryAPIRPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.Web.Port)
	assert.Equal(t, "5000", cfg.Library.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Web.LibraryAPIURL)
	assert.Equal(t, 5, cfg.Web.BooksPerPage)
	assert.Equal(t, 8, cfg.Web.HomeBooks)
	assert.Equal(t, 10*time.Second, cfg.Web.LibraryAPITimeout)
	assert.Equal(t, 5*time.Minute, cfg.Web.FlashTTL)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.Library.CORSOrigins)
	assert.True(t, filepath.IsAbs(cfg.Library.DataPath))
	assert.Equal(t, "Local", cfg.App.Timezone)
	assert.Equal(t, time.Local, cfg.App.Location)
}

func TestLoad_Timezone(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TIMEZONE", "Asia/Dhaka")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.App.Location)
	assert.Equal(t, "Asia/Dhaka", cfg.App.Location.String())

	cfg, err = Load([]string{"-timezone", "UTC"})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cfg.App.Location, "flag beats env")
}

func TestValidate_Timezone(t *testing.T) {
	cfg := validConfig()
	cfg.App.Timezone = "Mars/Olympus_Mons"
	assert.ErrorContains(t, cfg.Validate(), "invalid timezone")
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("WEB_PORT=9000\nLIBRARY_PORT=6000\nBOOKS_PER_PAGE=7\n"), 0o600))

	t.Setenv("LIBRARY_PORT", "7000")

	cfg, err := Load([]string{"-web-port", "9100", "-library-api-url", "http://api.test/"})
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Web.Port, "flag beats .env")
	assert.Equal(t, "7000", cfg.Library.Port, "env beats .env")
	assert.Equal(t, 7, cfg.Web.BooksPerPage, ".env beats default")
	assert.Equal(t, "http://api.test", cfg.Web.LibraryAPIURL, "trailing slash trimmed")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FLASH_TTL", "forever")

	_, err := Load(nil)
	assert.ErrorContains(t, err, "FLASH_TTL")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/lib.db", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "lib.db"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)
}
