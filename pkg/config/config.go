// Package config loads inflate settings from a TOML or YAML file.
//
// A config file provides solver defaults, default prompt inputs, and HTTP
// server settings. Values absent from the file keep their built-in defaults;
// command-line flags override both.
//
//	[solver]
//	tolerance = 1e-6
//	max_iterations = 1000
//	max_upper_bound = 100.0
//
//	[inputs]
//	first_cell_height = 0.001
//	layers = 10
//	total_height = 0.05
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//	solve_timeout = "2s"
//
// The format is chosen by extension: .toml, or .yaml/.yml.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
)

const (
	// appName is the directory name under the XDG config home.
	appName = "inflate"

	// fileName is the default config file name.
	fileName = "config.toml"
)

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultSolveTimeout = 2 * time.Second
)

// Config is the full set of file-configurable settings.
type Config struct {
	Solver growth.Options `toml:"solver" yaml:"solver"`
	Inputs Inputs         `toml:"inputs" yaml:"inputs"`
	Server Server         `toml:"server" yaml:"server"`
}

// Inputs are the default physical inputs offered by the interactive prompt.
// Zero values mean "no default".
type Inputs struct {
	FirstCellHeight float64 `toml:"first_cell_height" yaml:"first_cell_height"`
	Layers          float64 `toml:"layers" yaml:"layers"`
	TotalHeight     float64 `toml:"total_height" yaml:"total_height"`
}

// Request converts the inputs into a solve request.
func (i Inputs) Request() growth.Request {
	return growth.Request{
		FirstCellHeight: i.FirstCellHeight,
		Layers:          i.Layers,
		TotalHeight:     i.TotalHeight,
	}
}

// Server holds HTTP service settings.
type Server struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	SolveTimeout time.Duration `toml:"solve_timeout" yaml:"solve_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: growth.DefaultOptions(),
		Server: Server{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			SolveTimeout: DefaultSolveTimeout,
		},
	}
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/inflate/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config at path on top of the defaults.
//
// An empty path means [DefaultPath]; a missing default file is not an error
// and yields the defaults. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode parses data into cfg according to the file extension of path.
// Unknown keys are rejected.
func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}

// SetDefaults fills zero fields with built-in defaults.
func (c *Config) SetDefaults() {
	c.Solver.SetDefaults()
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.SolveTimeout == 0 {
		c.Server.SolveTimeout = DefaultSolveTimeout
	}
}

// Validate checks the config after defaults have been applied.
func (c *Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "solver section")
	}
	inputs := []struct {
		name  string
		value float64
	}{
		{"inputs.first_cell_height", c.Inputs.FirstCellHeight},
		{"inputs.layers", c.Inputs.Layers},
		{"inputs.total_height", c.Inputs.TotalHeight},
	}
	for _, in := range inputs {
		if err := errors.ValidateFinite(errors.ErrCodeInvalidConfig, in.name, in.value); err != nil {
			return err
		}
		if in.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %g", in.name, in.value)
		}
	}
	if c.Server.ReadTimeout < 0 || c.Server.SolveTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
