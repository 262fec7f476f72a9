package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/wahlandcase/attuned.prsplit/internal/rules"
)

const fileName = "prsplit.toml"

type Config struct {
	Refs    RefsConfig    `toml:"refs"`
	Tickets TicketsConfig `toml:"tickets"`
	Rules   RulesConfig   `toml:"rules"`
	PR      PRConfig      `toml:"pr"`
	Logging LoggingConfig `toml:"logging"`

	// Compiled regex from Tickets.Pattern (not serialized)
	ticketRegex *regexp.Regexp
	path        string
}

type RefsConfig struct {
	Source string `toml:"source"`
	Base   string `toml:"base"`
	Remote string `toml:"remote"`
}

type TicketsConfig struct {
	Pattern string `toml:"pattern"`
}

// RulesConfig points at a rule catalog file. Empty means the built-in catalog.
type RulesConfig struct {
	File string `toml:"file"`
}

type PRConfig struct {
	BranchSuffix string `toml:"branch_suffix"`
	Draft        bool   `toml:"draft"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Refs: RefsConfig{
			Source: "unomi-3-dev",
			Base:   "master",
			Remote: "origin",
		},
		Tickets: TicketsConfig{
			Pattern: "UNOMI-[0-9]+",
		},
		PR: PRConfig{
			BranchSuffix: "-implementation",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Path returns the default config location under the user config dir
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "prsplit", fileName), nil
}

// Load reads the config from the default location
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := DefaultConfig()
		if err := cfg.compileRegex(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults,
// which are written back to path on a best-effort basis.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.compileRegex(); err != nil {
				return nil, err
			}
			_ = cfg.Save() // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WithHintf(
			errors.Wrapf(err, "parse %s", path),
			"fix or remove %s to fall back to the defaults", path)
	}

	if err := cfg.compileRegex(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) compileRegex() error {
	// Empty pattern = ticket extraction disabled
	if c.Tickets.Pattern == "" {
		c.ticketRegex = nil
		return nil
	}
	// Case-sensitive; a pattern may opt in with (?i)
	re, err := regexp.Compile("(" + c.Tickets.Pattern + ")")
	if err != nil {
		return fmt.Errorf("invalid tickets.pattern %q: %w", c.Tickets.Pattern, err)
	}
	c.ticketRegex = re
	return nil
}

// TicketRegex returns the compiled ticket pattern regex (nil if disabled)
func (c *Config) TicketRegex() *regexp.Regexp {
	// Safe even if compileRegex() was never called
	return c.ticketRegex
}

// Catalog loads the configured rule catalog, or the built-in one
func (c *Config) Catalog() (*rules.Catalog, error) {
	if c.Rules.File == "" {
		return rules.Default()
	}
	return rules.LoadFile(expandTilde(c.Rules.File))
}

// LogFile returns the configured log file with ~ expanded
func (c *Config) LogFile() string {
	return expandTilde(c.Logging.File)
}

func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return err
		}
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
