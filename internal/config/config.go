package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultVolumeStep  = 5
	defaultSeekSeconds = 10
)

type Config struct {
	MediaDirs    []string `koanf:"media_dirs"`    // directories scanned into the catalog
	DatabaseFile string   `koanf:"database_file"` // override for the catalog database path
	VolumeStep   int      `koanf:"volume_step"`   // volume units per key press
	SeekSeconds  int      `koanf:"seek_seconds"`  // seek distance per key press
	Repeat       string   `koanf:"repeat"`        // startup repeat mode: off, one, all
}

// Load reads the config files in priority order (last wins) and
// applies defaults. A missing config file is not an error.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, dir := range cfg.MediaDirs {
		cfg.MediaDirs[i] = expandPath(dir)
	}
	cfg.DatabaseFile = expandPath(cfg.DatabaseFile)

	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 100 {
		cfg.VolumeStep = defaultVolumeStep
	}
	if cfg.SeekSeconds <= 0 {
		cfg.SeekSeconds = defaultSeekSeconds
	}

	return cfg, nil
}

// SeekDelta returns the configured seek distance as a duration.
func (c *Config) SeekDelta() time.Duration {
	return time.Duration(c.SeekSeconds) * time.Second
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/chooui/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chooui", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
