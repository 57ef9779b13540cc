// Package config loads the YAML configuration shared by the editor and the
// page store server. Missing fields keep their defaults; secrets can be
// supplied through the environment instead of the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvDatabaseURL = "STUDYVERSE_DATABASE_URL"
	EnvAIToken     = "STUDYVERSE_AI_TOKEN"
	EnvAIEndpoint  = "STUDYVERSE_AI_ENDPOINT"
	EnvStoreURL    = "STUDYVERSE_STORE_URL"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreBadger   = "badger"
	StorePostgres = "postgres"
	StoreRemote   = "remote"
)

// AI backends.
const (
	AIBuiltin = "builtin"
	AIScript  = "script"
	AIHTTP    = "http"
)

// Config is the full configuration.
type Config struct {
	Page     string         `yaml:"page"`
	Store    StoreConfig    `yaml:"store"`
	AI       AIConfig       `yaml:"ai"`
	Viewport ViewportConfig `yaml:"viewport"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

// StoreConfig selects where pages are saved.
type StoreConfig struct {
	Backend     string        `yaml:"backend"`
	BadgerDir   string        `yaml:"badger_dir"`
	DatabaseURL string        `yaml:"database_url"`
	RemoteURL   string        `yaml:"remote_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

// AIConfig selects the diagram generator.
type AIConfig struct {
	Backend  string        `yaml:"backend"`
	Endpoint string        `yaml:"endpoint"`
	Token    string        `yaml:"token"`
	Script   string        `yaml:"script"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ViewportConfig bounds zooming.
type ViewportConfig struct {
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"`
	InitialZoom float64 `yaml:"initial_zoom"`
}

// ExportConfig controls PNG export and printing.
type ExportConfig struct {
	Dir          string   `yaml:"dir"`
	Scale        float64  `yaml:"scale"`
	PrintCommand string   `yaml:"print_command"`
	PrintArgs    []string `yaml:"print_args"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ServerConfig is read by the page store server.
type ServerConfig struct {
	Listen         string `yaml:"listen"`
	BodyLimit      int    `yaml:"body_limit"`
	SkipValidation bool   `yaml:"skip_validation"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Page: "default",
		Store: StoreConfig{
			Backend:   StoreBadger,
			BadgerDir: ".studyverse/pages",
			RemoteURL: "http://localhost:3000",
			Timeout:   10 * time.Second,
		},
		AI: AIConfig{
			Backend: AIBuiltin,
			Timeout: 90 * time.Second,
		},
		Viewport: ViewportConfig{MinZoom: 0.25, MaxZoom: 3, InitialZoom: 1},
		Export:   ExportConfig{Dir: ".", Scale: 1},
		Log:      LogConfig{File: "studyverse.log", Level: "info"},
		Server:   ServerConfig{Listen: ":3000", BodyLimit: 8 << 20},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides secrets and endpoints from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		c.Store.DatabaseURL = v
	}
	if v, ok := lookup(EnvStoreURL); ok && v != "" {
		c.Store.RemoteURL = v
	}
	if v, ok := lookup(EnvAIToken); ok && v != "" {
		c.AI.Token = v
	}
	if v, ok := lookup(EnvAIEndpoint); ok && v != "" {
		c.AI.Endpoint = v
	}
}

// Validate checks the configuration and normalizes backend names.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	c.AI.Backend = strings.ToLower(strings.TrimSpace(c.AI.Backend))

	if c.Page == "" {
		return errors.New("page is required")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreBadger:
		if c.Store.BadgerDir == "" {
			return errors.New("store.badger_dir is required for the badger backend")
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url (or %s) is required for the postgres backend", EnvDatabaseURL)
		}
	case StoreRemote:
		if c.Store.RemoteURL == "" {
			return errors.New("store.remote_url is required for the remote backend")
		}
	default:
		return fmt.Errorf("store.backend %q is not one of memory, badger, postgres, remote", c.Store.Backend)
	}

	switch c.AI.Backend {
	case AIBuiltin:
	case AIScript:
		if c.AI.Script == "" {
			return errors.New("ai.script is required for the script backend")
		}
	case AIHTTP:
		if c.AI.Endpoint == "" {
			return fmt.Errorf("ai.endpoint (or %s) is required for the http backend", EnvAIEndpoint)
		}
	default:
		return fmt.Errorf("ai.backend %q is not one of builtin, script, http", c.AI.Backend)
	}

	v := c.Viewport
	if v.MinZoom <= 0 || v.MaxZoom <= 0 || v.MinZoom > v.MaxZoom {
		return fmt.Errorf("viewport zoom bounds [%g, %g] are invalid", v.MinZoom, v.MaxZoom)
	}
	if v.InitialZoom < v.MinZoom || v.InitialZoom > v.MaxZoom {
		return fmt.Errorf("viewport.initial_zoom %g is outside [%g, %g]", v.InitialZoom, v.MinZoom, v.MaxZoom)
	}
	if c.Export.Scale <= 0 {
		return errors.New("export.scale must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Marshal renders c as YAML, with the token redacted.
func (c Config) Marshal() ([]byte, error) {
	if c.AI.Token != "" {
		c.AI.Token = "REDACTED"
	}
	if c.Store.DatabaseURL != "" {
		c.Store.DatabaseURL = "REDACTED"
	}
	return yaml.Marshal(c)
}
