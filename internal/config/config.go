// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without a zoneinfo database

	"github.com/joho/godotenv"
)

// Config holds the configuration for every BoiBazaar binary.
// Each binary reads the sections it needs and ignores the rest.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Web     WebConfig
	Library LibraryConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string

	// Timezone names the zone whose calendar day is "today" for due dates.
	// Both binaries must agree on it. Default: Local.
	Timezone string
	Location *time.Location // resolved from Timezone by Load
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server timeouts shared by both servers.
type ServerConfig struct {
	ReadTimeout  time.Duration // default: 15s
	WriteTimeout time.Duration // default: 15s
	IdleTimeout  time.Duration // default: 60s
}

// WebConfig holds configuration for the web front end.
type WebConfig struct {
	Port string // default: 8080

	// Remote library API.
	LibraryAPIURL     string
	LibraryAPITimeout time.Duration
	LibraryAPIRPS     float64
	LibraryAPIBurst   int

	// TemplatesDir serves templates from disk and reloads them on change.
	// Empty means the embedded templates are used.
	TemplatesDir string

	FlashTTL     time.Duration
	CookieSecure bool
	BooksPerPage int // all-books table page size (default: 5)
	HomeBooks    int // books shown on the home grid before "Load More" (default: 8)
}

// LibraryConfig holds configuration for the reference library API.
type LibraryConfig struct {
	Port           string // default: 5000
	DataPath       string // SQLite database file
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("boibazaar", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	envFile := fs.String("env-file", ".env", "Path to .env file")
	timezone := fs.String("timezone", "", "IANA time zone for due dates (default: Local)")

	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	webPort := fs.String("web-port", "", "Web front end port (default: 8080)")
	apiURL := fs.String("library-api-url", "", "Base URL of the library API")
	apiTimeout := fs.String("library-api-timeout", "", "Library API request timeout (default: 10s)")
	templatesDir := fs.String("templates-dir", "", "Serve templates from this directory and reload on change")

	libraryPort := fs.String("library-port", "", "Library API port (default: 5000)")
	dataPath := fs.String("data-path", "", "Path to the library SQLite database")
	corsOrigins := fs.String("cors-origins", "", "Comma separated list of allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine; real environment variables always win.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
			Timezone:    getConfigValue(*timezone, "TIMEZONE", "Local"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Web: WebConfig{
			Port:            getConfigValue(*webPort, "WEB_PORT", "8080"),
			LibraryAPIURL:   strings.TrimRight(getConfigValue(*apiURL, "LIBRARY_API_URL", "http://localhost:5000"), "/"),
			LibraryAPIRPS:   getFloatConfigValue("", "LIBRARY_API_RPS", 10),
			LibraryAPIBurst: getIntConfigValue("", "LIBRARY_API_BURST", 20),
			TemplatesDir:    getConfigValue(*templatesDir, "TEMPLATES_DIR", ""),
			CookieSecure:    getBoolConfigValue("", "COOKIE_SECURE", false),
			BooksPerPage:    getIntConfigValue("", "BOOKS_PER_PAGE", 5),
			HomeBooks:       getIntConfigValue("", "HOME_BOOKS", 8),
		},
		Library: LibraryConfig{
			Port:           getConfigValue(*libraryPort, "LIBRARY_PORT", "5000"),
			DataPath:       getConfigValue(*dataPath, "LIBRARY_DATA_PATH", ""),
			CORSOrigins:    splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "http://localhost:8080")),
			RateLimitRPS:   getFloatConfigValue("", "RATE_LIMIT_RPS", 20),
			RateLimitBurst: getIntConfigValue("", "RATE_LIMIT_BURST", 40),
		},
	}

	durations := []struct {
		flagValue, envKey, def string
		dst                    *time.Duration
	}{
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{*apiTimeout, "LIBRARY_API_TIMEOUT", "10s", &cfg.Web.LibraryAPITimeout},
		{"", "FLASH_TTL", "5m", &cfg.Web.FlashTTL},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	cfg.App.Location, _ = time.LoadLocation(cfg.App.Timezone)

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	u, err := url.Parse(c.Web.LibraryAPIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid library API URL: %q", c.Web.LibraryAPIURL)
	}

	if c.Web.BooksPerPage <= 0 {
		return fmt.Errorf("books per page must be positive, got %d", c.Web.BooksPerPage)
	}
	if c.Web.HomeBooks <= 0 {
		return fmt.Errorf("home books must be positive, got %d", c.Web.HomeBooks)
	}
	if c.Web.LibraryAPIRPS <= 0 {
		return fmt.Errorf("library API rps must be positive, got %v", c.Web.LibraryAPIRPS)
	}

	return nil
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath defaults the library database to ~/BoiBazaar/library.db.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.Library.DataPath, filepath.Join(homeDir, "BoiBazaar", "library.db"))
	if err != nil {
		return err
	}
	c.Library.DataPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1", "yes" (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
// Unparseable values fall back to the default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return n
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
