package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ClaudeRoot  string `toml:"claude_root"`
	OutputDir   string `toml:"output_dir"`
	CatalogPath string `toml:"catalog_path"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ClaudeRoot:  filepath.Join(home, ".claude", "projects"),
		OutputDir:   ".",
		CatalogPath: filepath.Join(home, ".config", "cchx", "catalog.db"),
	}

	cfgPath := filepath.Join(home, ".config", "cchx", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ClaudeRoot = expandHome(cfg.ClaudeRoot, home)
	cfg.OutputDir = expandHome(cfg.OutputDir, home)
	cfg.CatalogPath = expandHome(cfg.CatalogPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
