// Package chancfg holds the small set of knobs a host embedding this
// module needs to supply at startup: where the store lives and how
// loud it should log. It plays the same normalize-then-validate role
// lncfg plays for listen addresses, just over a far smaller surface.
package chancfg

import (
	"fmt"
	"path/filepath"

	"github.com/btcsuite/btclog"
)

const (
	// DefaultDataDir is used when Config.DataDir is left empty.
	DefaultDataDir = "paychan-data"

	// DefaultLogLevel is used when Config.LogLevel is left empty.
	DefaultLogLevel = "info"
)

// Config is the host-supplied configuration for an embedded core
// instance.
type Config struct {
	// DataDir is the directory the bbolt store is opened under.
	DataDir string

	// LogLevel is a btclog level name ("trace", "debug", "info",
	// "warn", "error", "critical", "off") applied to every subsystem
	// logger at startup.
	LogLevel string
}

// Normalize fills in defaults for any empty field and cleans DataDir
// into an absolute-safe, slash-normalized path, the same shape
// lncfg.NormalizeAddresses applies to listen addresses before they're
// used.
func (c Config) Normalize() Config {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	c.DataDir = filepath.Clean(c.DataDir)

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// Validate checks that LogLevel parses as a known btclog level.
func (c Config) Validate() error {
	if _, ok := btclog.LevelFromString(c.LogLevel); !ok {
		return fmt.Errorf("chancfg: unrecognized log level %q", c.LogLevel)
	}
	if c.DataDir == "" {
		return fmt.Errorf("chancfg: data directory must not be empty")
	}
	return nil
}

// Level parses LogLevel into a btclog.Level, falling back to
// LevelInfo if it somehow fails to parse despite Validate having
// passed (defensive only; Validate is expected to have already run).
func (c Config) Level() btclog.Level {
	level, ok := btclog.LevelFromString(c.LogLevel)
	if !ok {
		return btclog.LevelInfo
	}
	return level
}
