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

	"github.com/five82/avgang/internal/vasttrafik"
)

// ErrMissingCredentials is returned when neither the config file nor the
// environment provides an API key and secret.
var ErrMissingCredentials = errors.New("api credentials missing: set api_key and secret")

// Config captures everything avgang reads at startup.
type Config struct {
	Credentials    vasttrafik.Credentials
	StopAreaGID    string
	StopName       string
	UpdateInterval time.Duration
	TokenURL       string
	APIBaseURL     string
	LogPath        string
}

const (
	defaultConfigPath     = "~/.config/avgang/config.toml"
	defaultLogPath        = "~/.local/state/avgang/avgang.log"
	defaultStopAreaGID    = "9021014002090000"
	defaultStopName       = "Doktor Fries Torg"
	defaultUpdateInterval = 600 * time.Second

	envAPIKey = "AVGANG_API_KEY"
	envSecret = "AVGANG_SECRET"
)

// Load parses the config at path (or the default path). A missing file is not an
// error by itself, but credentials must come from somewhere.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		StopAreaGID:    defaultStopAreaGID,
		StopName:       defaultStopName,
		UpdateInterval: defaultUpdateInterval,
		TokenURL:       vasttrafik.DefaultTokenURL,
		APIBaseURL:     vasttrafik.DefaultBaseURL,
		LogPath:        mustExpand(defaultLogPath),
	}

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}

	cfg.Credentials = vasttrafik.Credentials{
		Key:    firstNonEmpty(os.Getenv(envAPIKey), raw.APIKey),
		Secret: firstNonEmpty(os.Getenv(envSecret), raw.Secret),
	}
	if cfg.Credentials.Key == "" || cfg.Credentials.Secret == "" {
		return Config{}, fmt.Errorf("%w (in %s or %s/%s)", ErrMissingCredentials, resolved, envAPIKey, envSecret)
	}

	if gid := strings.TrimSpace(raw.StopAreaGID); gid != "" {
		cfg.StopAreaGID = gid
	}
	if name := strings.TrimSpace(raw.StopName); name != "" {
		cfg.StopName = name
	}
	if raw.UpdateIntervalSeconds > 0 {
		cfg.UpdateInterval = time.Duration(raw.UpdateIntervalSeconds) * time.Second
	}
	if u := strings.TrimSpace(raw.TokenURL); u != "" {
		cfg.TokenURL = u
	}
	if u := strings.TrimSpace(raw.APIBaseURL); u != "" {
		cfg.APIBaseURL = u
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		cfg.LogPath = mustExpand(p)
	}

	return cfg, nil
}

// LogPath returns the log file location from the config at path without
// requiring credentials, for `avgang logs`.
func LogPath(path string) (string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	raw, err := readFile(resolved)
	if err != nil {
		return "", err
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		return expandPath(p)
	}
	return expandPath(defaultLogPath)
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	APIKey                string `toml:"api_key"`
	Secret                string `toml:"secret"`
	StopAreaGID           string `toml:"stop_area_gid"`
	StopName              string `toml:"stop_name"`
	UpdateIntervalSeconds int    `toml:"update_interval_seconds"`
	TokenURL              string `toml:"token_url"`
	APIBaseURL            string `toml:"api_base_url"`
	LogPath               string `toml:"log_path"`
}

// readFile decodes the file at resolved. A missing file decodes as empty.
func readFile(resolved string) (fileConfig, error) {
	var raw fileConfig

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return raw, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return raw, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return raw, fmt.Errorf("open config: %w", err)
	}
	return raw, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
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
