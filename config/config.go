package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/jamesbehr/symlinker/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

const EnvPrefix = "SYMLINKER_"

// Config holds the defaults for command flags. A flag given on the command
// line always wins over the value here.
type Config struct {
	Recursive bool   `koanf:"recursive" toml:"recursive"`
	Sort      bool   `koanf:"sort" toml:"sort"`
	Type      bool   `koanf:"type" toml:"type"`
	Absolute  bool   `koanf:"absolute" toml:"absolute"`
	Follow    bool   `koanf:"follow" toml:"follow"`
	Color     string `koanf:"color" toml:"color"`
	LogFile   string `koanf:"log_file" toml:"log_file"`
	Verbosity int    `koanf:"verbosity" toml:"verbosity"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"recursive": true,
		"sort":      false,
		"type":      false,
		"absolute":  false,
		"follow":    false,
		"color":     "auto",
		"log_file":  "",
		"verbosity": 0,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/symlinker/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "symlinker", "config.toml")
}

// Load merges the built-in defaults, the TOML file at path and SYMLINKER_*
// environment variables, later sources overriding earlier ones. A missing
// file is skipped unless it was named explicitly.
func Load(path string, explicit bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ConfigLoad, "", "failed to load defaults")
	}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ConfigLoad, path, "failed to load config from %s", path)
			}
		case explicit || !os.IsNotExist(err):
			return nil, errors.Wrapf(err, errors.ConfigLoad, path, "can't read config file %s", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ConfigLoad, "", "failed to load environment")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ConfigLoad, path, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.Newf(errors.InvalidInput, "", "invalid color %q: must be auto, always or never", c.Color)
	}

	if c.Verbosity < 0 {
		return errors.Newf(errors.InvalidInput, "", "invalid verbosity %d", c.Verbosity)
	}

	return nil
}

// TOML renders the configuration in the same format Load reads.
func (c *Config) TOML() (string, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}

	return string(data), nil
}
