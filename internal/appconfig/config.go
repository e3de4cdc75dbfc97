package appconfig

import (
	"os"
	"path/filepath"
	"time"

	"pkt.systems/tabpad/internal/settings"
	"pkt.systems/tabpad/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	StateDir      string         `mapstructure:"state_dir" yaml:"state_dir"`
	Settings      SettingsConfig `mapstructure:"settings" yaml:"settings"`
	Files         FilesConfig    `mapstructure:"files" yaml:"files"`
	Recent        RecentConfig   `mapstructure:"recent" yaml:"recent"`
	Status        StatusConfig   `mapstructure:"status" yaml:"status"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// SettingsConfig selects where the session registry is kept.
type SettingsConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path defaults to a file under state_dir named after the backend.
	Path string `mapstructure:"path" yaml:"path"`
}

// FilesConfig controls document loading and saving.
type FilesConfig struct {
	MaxSizeMB        int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	DefaultExtension string `mapstructure:"default_extension" yaml:"default_extension"`
	Backups          bool   `mapstructure:"backups" yaml:"backups"`
}

// RecentConfig controls the recent files list.
type RecentConfig struct {
	Max int `mapstructure:"max" yaml:"max"`
}

// StatusConfig controls status bar refresh.
type StatusConfig struct {
	IntervalMS int `mapstructure:"interval_ms" yaml:"interval_ms"`
}

// LoggingConfig controls audit logging behavior.
type LoggingConfig struct {
	DisableAuditTrails bool `mapstructure:"disable_audit_trails" yaml:"disable_audit_trails"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		StateDir:      filepath.Join(home, ".tabpad", "state"),
		Settings: SettingsConfig{
			Backend: settings.BackendBolt,
			Path:    "",
		},
		Files: FilesConfig{
			MaxSizeMB:        int(schema.DefaultMaxFileSize / (1024 * 1024)),
			DefaultExtension: schema.DefaultExtension,
			Backups:          true,
		},
		Recent: RecentConfig{
			Max: schema.DefaultMaxRecentFiles,
		},
		Status: StatusConfig{
			IntervalMS: int(schema.DefaultStatusInterval / time.Millisecond),
		},
		Logging: LoggingConfig{
			DisableAuditTrails: false,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tabpad", "config.yaml"), nil
}

// SettingsPath returns the registry location for the configured backend.
func (c Config) SettingsPath() string {
	if c.Settings.Path != "" {
		return c.Settings.Path
	}
	switch c.Settings.Backend {
	case settings.BackendMemory:
		return ""
	case settings.BackendJSON:
		return filepath.Join(c.StateDir, "settings.json")
	default:
		return filepath.Join(c.StateDir, "settings.db")
	}
}

// ServiceConfig maps the file config onto the core service config.
func (c Config) ServiceConfig() schema.ServiceConfig {
	return schema.ServiceConfig{
		StateDir:         c.StateDir,
		MaxFileSize:      int64(c.Files.MaxSizeMB) * 1024 * 1024,
		MaxRecentFiles:   c.Recent.Max,
		DefaultExtension: c.Files.DefaultExtension,
		StatusInterval:   time.Duration(c.Status.IntervalMS) * time.Millisecond,
		DisableBackups:   !c.Files.Backups,
	}
}
