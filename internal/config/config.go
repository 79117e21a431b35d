package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings shared by the triage TUI and the dev server.
type Config struct {
	APIBind  string
	Deadline time.Duration
	LogFile  string
	LogLevel string
	Server   ServerConfig
}

// ServerConfig configures the dev triage server.
type ServerConfig struct {
	Addr       string
	Model      string
	OllamaHost string // empty defers to OLLAMA_HOST
}

const (
	defaultConfigPath = "~/.config/triage/config.toml"
	defaultLogFile    = "~/.local/state/triage/triage.log"
	defaultAPIBind    = "127.0.0.1:8000"
	defaultDeadline   = 30 * time.Second
	defaultLogLevel   = "info"
	defaultServerAddr = ":8000"
	defaultModel      = "tinyllama"

	// StderrLog selects stderr instead of a log file.
	StderrLog = "-"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBind:  defaultAPIBind,
		Deadline: defaultDeadline,
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
		Server: ServerConfig{
			Addr:  defaultServerAddr,
			Model: defaultModel,
		},
	}
}

// Load locates and parses the triage config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind         string `toml:"api_bind"`
		DeadlineSeconds int    `toml:"deadline_seconds"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
		Server          struct {
			Addr       string `toml:"addr"`
			Model      string `toml:"model"`
			OllamaHost string `toml:"ollama_host"`
		} `toml:"server"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBind); v != "" {
		cfg.APIBind = v
	}
	if raw.DeadlineSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: deadline_seconds must be positive, got %d", raw.DeadlineSeconds)
	}
	if raw.DeadlineSeconds > 0 {
		cfg.Deadline = time.Duration(raw.DeadlineSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = resolveLogFile(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Server.Addr); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(raw.Server.Model); v != "" {
		cfg.Server.Model = v
	}
	cfg.Server.OllamaHost = strings.TrimSpace(raw.Server.OllamaHost)

	return cfg, nil
}

// ResolveLogFile expands a user supplied log path, keeping the stderr marker.
func ResolveLogFile(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return mustExpand(defaultLogFile)
	}
	return resolveLogFile(trimmed)
}

func resolveLogFile(path string) string {
	if path == StderrLog {
		return StderrLog
	}
	return mustExpand(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
