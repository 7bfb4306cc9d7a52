package app

import (
	"fmt"
	"os"
	"path/filepath"

	"cds-go/internal/config"
)

// Environment variables that override built-in locations.
const (
	EnvConfigPath = "CDS_CONFIG_PATH"
	EnvHome       = "CDS_HOME"
	EnvMonitorDir = "CDS_MONITOR_DIR"
)

// Defaults are the locations cds falls back to before the config file is read.
type Defaults struct {
	ConfigPath string // CDS_CONFIG_PATH, else ~/.config/cds.toml
	BaseDir    string // CDS_HOME, else ~/.local/share/cds
	MonitorDir string // CDS_MONITOR_DIR; empty means use the config value
}

// GetDefaults resolves Defaults from the environment and the user's home directory.
func GetDefaults() (*Defaults, error) {
	configPath, err := envOrHome(EnvConfigPath, ".config", "cds.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := envOrHome(EnvHome, ".local", "share", "cds")
	if err != nil {
		return nil, err
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		MonitorDir: os.Getenv(EnvMonitorDir),
	}, nil
}

// envOrHome returns the value of key, or the home directory joined with elem.
// The home directory is only looked up when key is unset.
func envOrHome(key string, elem ...string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory for %s: %w", key, err)
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// NewConfig returns the config "cds config init" writes.
func (d *Defaults) NewConfig() *config.Config {
	return d.apply(config.NewConfig(d.BaseDir))
}

// LoadConfig reads the config file, layered over NewConfig.
// CDS_MONITOR_DIR wins over monitor_dir from the file.
func (d *Defaults) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(d.ConfigPath, d.BaseDir)
	if err != nil {
		return nil, err
	}
	return d.apply(cfg), nil
}

func (d *Defaults) apply(cfg *config.Config) *config.Config {
	if d.MonitorDir != "" {
		cfg.MonitorDir = d.MonitorDir
	}
	return cfg
}
