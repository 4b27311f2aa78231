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
	"go.uber.org/zap/zapcore"
)

// Backend names a persistence gateway.
type Backend string

const (
	BackendFile Backend = "file"
	BackendBolt Backend = "bolt"
)

// Config holds the runtime settings for standups.
type Config struct {
	SaveDebounce   time.Duration
	SettleDelay    time.Duration
	Storage        Backend
	LogFile        string
	LogLevel       zapcore.Level
	TranscriptFile string
	// DataDir is fixed; it is not read from the config file.
	DataDir string
}

const (
	defaultConfigPath   = "~/.config/standups/config.toml"
	defaultDataDir      = "~/.local/share/standups"
	defaultLogFile      = "~/.local/state/standups/standups.log"
	defaultSaveDebounce = time.Second
	defaultSettleDelay  = 400 * time.Millisecond
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		SaveDebounce: defaultSaveDebounce,
		SettleDelay:  defaultSettleDelay,
		Storage:      BackendFile,
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     zapcore.InfoLevel,
		DataDir:      mustExpand(defaultDataDir),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
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
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SaveDebounce   string `toml:"save_debounce"`
		SettleDelay    string `toml:"settle_delay"`
		Storage        string `toml:"storage"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		TranscriptFile string `toml:"transcript_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.SaveDebounce, err = parseDuration("save_debounce", raw.SaveDebounce, defaultSaveDebounce); err != nil {
		return Config{}, err
	}
	if cfg.SettleDelay, err = parseDuration("settle_delay", raw.SettleDelay, defaultSettleDelay); err != nil {
		return Config{}, err
	}

	switch Backend(strings.ToLower(strings.TrimSpace(raw.Storage))) {
	case "", BackendFile:
		cfg.Storage = BackendFile
	case BackendBolt:
		cfg.Storage = BackendBolt
	default:
		return Config{}, fmt.Errorf("parse config: unknown storage %q", raw.Storage)
	}

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: log_level: %w", err)
		}
		cfg.LogLevel = parsed
	}
	if transcript := strings.TrimSpace(raw.TranscriptFile); transcript != "" {
		cfg.TranscriptFile = mustExpand(transcript)
	}

	return cfg, nil
}

// StoragePath returns the file the configured backend writes to.
func (c Config) StoragePath() string {
	dir := c.DataDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultDataDir)
	}
	if c.Storage == BackendBolt {
		return filepath.Join(dir, "standups.db")
	}
	return filepath.Join(dir, "standups.toml")
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", field)
	}
	return d, nil
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
