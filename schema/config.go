package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ServiceConfig defines defaults and limits for the core session service.
type ServiceConfig struct {
	StateDir         string
	MaxFileSize      int64
	MaxRecentFiles   int
	DefaultExtension string
	UntitledPrefix   string
	StatusInterval   time.Duration
	DisableBackups   bool
}

const (
	// DefaultMaxFileSize is the largest file the store will load (10 MB).
	DefaultMaxFileSize int64 = 10 * 1024 * 1024
	// DefaultMaxRecentFiles caps the recent files list.
	DefaultMaxRecentFiles = 10
	// DefaultExtension is appended to save paths that have none.
	DefaultExtension = RichTextExtension
	// DefaultUntitledPrefix names unsaved tabs ("Untitled 1", "Untitled 2", ...).
	DefaultUntitledPrefix = "Untitled"
	// DefaultStatusInterval is how often hosts should refresh the status bar.
	DefaultStatusInterval = 100 * time.Millisecond
)

// NormalizeServiceConfig applies defaults and validates the config.
func NormalizeServiceConfig(cfg ServiceConfig) (ServiceConfig, error) {
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ServiceConfig{}, err
		}
		cfg.StateDir = filepath.Join(home, ".tabpad", "state")
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.MaxRecentFiles <= 0 {
		cfg.MaxRecentFiles = DefaultMaxRecentFiles
	}
	if cfg.DefaultExtension == "" {
		cfg.DefaultExtension = DefaultExtension
	}
	if !strings.HasPrefix(cfg.DefaultExtension, ".") {
		cfg.DefaultExtension = "." + cfg.DefaultExtension
	}
	if strings.TrimSpace(cfg.UntitledPrefix) == "" {
		cfg.UntitledPrefix = DefaultUntitledPrefix
	}
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = DefaultStatusInterval
	}
	if len(cfg.DefaultExtension) < 2 {
		return ServiceConfig{}, errors.New("default extension must not be empty")
	}
	return cfg, nil
}
