// Package config loads the optional TOML defaults file for cmd/rv32vm.
// Command-line flags always override values loaded here.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the defaults cmd/rv32vm reads before applying flags.
type Config struct {
	Image   string `toml:"image"`
	Budget  uint64 `toml:"budget"`
	Entry   uint32 `toml:"entry"`
	Trace   bool   `toml:"trace"`
	Console bool   `toml:"console"`
}

// Load reads and parses the TOML config file at path. A missing file is
// not an error: Load returns the zero Config so flags alone can drive
// the command.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: cannot parse %s", path)
	}
	return cfg, nil
}
