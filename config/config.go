// Package config handles unitconv.toml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/chazu/unitconv/registry"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "unitconv.toml"

const (
	DefaultPrecision = 4
	DefaultPort      = 7788
)

// ErrInvalidUnitDef is returned for a user-defined unit that cannot be built.
var ErrInvalidUnitDef = errors.New("invalid unit definition")

// Config represents a unitconv.toml file.
type Config struct {
	Display Display            `toml:"display"`
	Server  Server             `toml:"server"`
	Units   map[string]UnitDef `toml:"units"`

	// Dir is the directory containing the unitconv.toml file (set at load time).
	Dir string `toml:"-"`
}

// Display configures how results are printed.
type Display struct {
	Precision   int  `toml:"precision"`
	Superscript bool `toml:"superscript"`
}

// Server configures the conversion service.
type Server struct {
	Port int `toml:"port"`
}

// UnitDef is a user-defined linear unit.
type UnitDef struct {
	Space   string   `toml:"space"`
	Factor  float64  `toml:"factor"` // base units per one of this unit
	Aliases []string `toml:"aliases"`
	Metric  bool     `toml:"metric"`
}

// Default returns the configuration used when no unitconv.toml exists.
func Default() *Config {
	return &Config{
		Display: Display{Precision: DefaultPrecision},
		Server:  Server{Port: DefaultPort},
	}
}

// Load parses a unitconv.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return c, nil
}

// Parse decodes configuration text and fills in defaults for keys that are
// not set.
func Parse(data string) (*Config, error) {
	var c Config
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %s", undecoded[0])
	}

	// Defaults
	if !md.IsDefined("display", "precision") {
		c.Display.Precision = DefaultPrecision
	}
	if c.Display.Precision < 0 {
		return nil, fmt.Errorf("display.precision must not be negative, got %d", c.Display.Precision)
	}
	if !md.IsDefined("server", "port") {
		c.Server.Port = DefaultPort
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find a unitconv.toml file,
// then loads and returns the config. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Registry builds the built-in units plus every unit defined in c. Units are
// added in name order so errors are reported deterministically.
func (c *Config) Registry() (*registry.Registry, error) {
	if len(c.Units) == 0 {
		return registry.Default(), nil
	}

	b := registry.NewBuilder().Add(registry.DefaultUnits()...)
	names := make([]string, 0, len(c.Units))
	for name := range c.Units {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := c.Units[name]
		if def.Space == "" {
			return nil, fmt.Errorf("%w: units.%s has no space", ErrInvalidUnitDef, name)
		}
		if def.Factor <= 0 {
			return nil, fmt.Errorf("%w: units.%s factor must be positive, got %v", ErrInvalidUnitDef, name, def.Factor)
		}
		u := registry.Linear(name, registry.Space(def.Space), def.Factor, def.Aliases...)
		u.Metric = def.Metric
		b.Add(u)
	}

	r, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUnitDef, err)
	}
	return r, nil
}
