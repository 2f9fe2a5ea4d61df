// Package config loads the server's startup configuration from a
// JWCC (JSON with comments and commas) file. Runtime settings live in
// the settings database; this file only locates the vault and the data
// directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// ConfigFileName is the default config file name, looked up in the
// working directory when no explicit path is given.
const ConfigFileName = ".vault-todos.json"

// Config holds startup configuration.
type Config struct {
	VaultDir string `json:"vault_dir"`
	DataDir  string `json:"data_dir"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		VaultDir: ".",
		DataDir:  "./data",
	}
}

// Load reads configuration from path. An empty path means the default
// location; a missing file at the default location is not an error and
// yields the defaults, while an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	var fileCfg Config
	if err := json.Unmarshal(std, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.VaultDir != "" {
		cfg.VaultDir = fileCfg.VaultDir
	}
	if fileCfg.DataDir != "" {
		cfg.DataDir = fileCfg.DataDir
	}
	return cfg, nil
}
