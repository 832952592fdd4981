package config

import (
	"fmt"
	"os"

	"github.com/san-kum/springrk/internal/frame"
	"github.com/san-kum/springrk/internal/spring"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = frame.DefaultFPS
	DefaultMaxFrames = 3600
	DefaultTarget    = 100.0
)

type Config struct {
	Preset string       `yaml:"preset,omitempty"`
	Spring SpringConfig `yaml:"spring"`
	Run    RunConfig    `yaml:"run"`
}

// SpringConfig holds the spring options. Mass, Tension and Friction are
// only set when given explicitly; nil falls back to the preset, or to the
// spring defaults and critical damping without one.
type SpringConfig struct {
	Mass         *float64 `yaml:"mass,omitempty"`
	Tension      *float64 `yaml:"tension,omitempty"`
	Friction     *float64 `yaml:"friction,omitempty"`
	Precision    float64  `yaml:"precision"`
	InitialValue float64  `yaml:"initial_value"`
	Velocity     float64  `yaml:"velocity"`
	Target       float64  `yaml:"target"`
	MaxDelta     float64  `yaml:"max_delta"`
}

type RunConfig struct {
	FPS       int `yaml:"fps"`
	MaxFrames int `yaml:"max_frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Spring: SpringConfig{
			Precision: spring.DefaultPrecision,
			Target:    DefaultTarget,
		},
		Run: RunConfig{
			FPS:       DefaultFPS,
			MaxFrames: DefaultMaxFrames,
		},
	}
}

// Load reads a YAML config. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Preset != "" {
		if _, ok := spring.LookupPreset(c.Preset); !ok {
			return fmt.Errorf("%w: %s", spring.ErrPresetNotFound, c.Preset)
		}
	}
	if c.Spring.Mass != nil && *c.Spring.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %f", *c.Spring.Mass)
	}
	if c.Spring.Tension != nil && *c.Spring.Tension < 0 {
		return fmt.Errorf("tension must not be negative, got %f", *c.Spring.Tension)
	}
	if c.Spring.Friction != nil && *c.Spring.Friction < 0 {
		return fmt.Errorf("friction must not be negative, got %f", *c.Spring.Friction)
	}
	if c.Spring.Precision <= 0 {
		return fmt.Errorf("precision must be positive, got %f", c.Spring.Precision)
	}
	if c.Run.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Run.FPS)
	}
	if c.Run.MaxFrames <= 0 {
		return fmt.Errorf("max_frames must be positive, got %d", c.Run.MaxFrames)
	}
	return nil
}

// Options converts the spring section to spring options. Only the physical
// constants that were set are included, so they override a preset.
func (c *Config) Options() []spring.Option {
	opts := make([]spring.Option, 0, 8)
	if c.Spring.Mass != nil {
		opts = append(opts, spring.WithMass(*c.Spring.Mass))
	}
	if c.Spring.Tension != nil {
		opts = append(opts, spring.WithTension(*c.Spring.Tension))
	}
	if c.Spring.Friction != nil {
		opts = append(opts, spring.WithFriction(*c.Spring.Friction))
	}
	return append(opts,
		spring.WithPrecision(c.Spring.Precision),
		spring.WithInitialValue(c.Spring.InitialValue),
		spring.WithVelocity(c.Spring.Velocity),
		spring.WithTarget(c.Spring.Target),
		spring.WithMaxDelta(c.Spring.MaxDelta),
	)
}

// NewSpring builds the configured spring; extra options are applied last.
func (c *Config) NewSpring(extra ...spring.Option) (*spring.Spring, error) {
	opts := append(c.Options(), extra...)
	if c.Preset != "" {
		return spring.NewWithPreset(c.Preset, opts...)
	}
	return spring.New(opts...), nil
}

// Params lists the names Set accepts.
var Params = []string{"mass", "tension", "friction", "precision", "initial_value", "velocity", "target"}

// Set assigns one spring parameter by its YAML name. A preset stays in
// effect for the constants that are not set.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "mass":
		c.Spring.Mass = &v
	case "tension":
		c.Spring.Tension = &v
	case "friction":
		c.Spring.Friction = &v
	case "precision":
		c.Spring.Precision = v
	case "initial_value":
		c.Spring.InitialValue = v
	case "velocity":
		c.Spring.Velocity = v
	case "target":
		c.Spring.Target = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Spring.Mass = clonePtr(c.Spring.Mass)
	out.Spring.Tension = clonePtr(c.Spring.Tension)
	out.Spring.Friction = clonePtr(c.Spring.Friction)
	return &out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
