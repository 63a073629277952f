// Package config loads the optional gitgraph configuration file.
//
// The file lives at <user config dir>/gitgraph/config.toml and provides
// defaults for flags; a missing file simply yields the built-in defaults.
// Flags always win over the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
	"github.com/dotgit-tools/gitgraph/pkg/history"
)

// Config holds the user-tunable defaults.
type Config struct {
	// Limit is the default commit count when no explicit range is given.
	Limit int `toml:"limit"`
	// Format is the default output format token.
	Format string `toml:"format"`
	// Trunks are the branch names treated as the repository trunk for
	// lane ordering.
	Trunks []string `toml:"trunk_branches"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Limit:  100,
		Format: "svg",
		Trunks: history.DefaultTrunks,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gitgraph", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error. A malformed file is: silently
// falling back to defaults would hide the user's mistake.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "parse config %s", path)
	}
	if cfg.Limit < 0 {
		cfg.Limit = 0
	}
	if len(cfg.Trunks) == 0 {
		cfg.Trunks = history.DefaultTrunks
	}
	return cfg, nil
}
