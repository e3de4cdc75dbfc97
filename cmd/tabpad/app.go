package main

import (
	"pkt.systems/pslog"
	"pkt.systems/tabpad/internal/appconfig"
	"pkt.systems/tabpad/internal/filestore"
	"pkt.systems/tabpad/internal/registry"
	"pkt.systems/tabpad/internal/settings"
)

// app holds the stores every subcommand opens from the config file.
type app struct {
	cfg      appconfig.Config
	settings settings.Port
	registry *registry.Registry
	files    *filestore.Store
}

func openApp(cfgPath string, ephemeral bool, logger pslog.Logger) (*app, error) {
	cfg, err := appconfig.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if ephemeral {
		cfg.Settings.Backend = settings.BackendMemory
	}
	svcCfg := cfg.ServiceConfig()
	port, err := settings.Open(cfg.Settings.Backend, cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	logger.Debug("settings opened", "backend", cfg.Settings.Backend, "path", cfg.SettingsPath())
	return &app{
		cfg:      cfg,
		settings: port,
		registry: registry.New(port, registry.Options{MaxRecent: svcCfg.MaxRecentFiles, Logger: logger}),
		files: filestore.New(filestore.Options{
			MaxSize:        svcCfg.MaxFileSize,
			DisableBackups: svcCfg.DisableBackups,
			Logger:         logger,
		}),
	}, nil
}

func (a *app) Close() error {
	return a.settings.Close()
}
