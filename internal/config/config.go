package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = 360.0
	DefaultNumSteps      = 9
	DefaultFrameDuration = 500 * time.Millisecond
)

var (
	ErrInvalid       = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

var validate = validator.New()

type Config struct {
	Name       string       `yaml:"name" validate:"required,excludesall=/\\"`
	Dt         float64      `yaml:"dt" validate:"gt=0"`
	NumSteps   int          `yaml:"num_steps" validate:"gte=0"`
	G          float64      `yaml:"g" validate:"gte=0"`
	Bodies     []BodyConfig `yaml:"bodies" validate:"len=3,dive"`
	MassDeltas []float64    `yaml:"mass_deltas,omitempty" validate:"omitempty,len=3"`
	FrameMs    int          `yaml:"frame_ms" validate:"gt=0"`
}

type BodyConfig struct {
	Name     string    `yaml:"name" validate:"required"`
	Mass     float64   `yaml:"mass"`
	Position []float64 `yaml:"position" validate:"len=3"`
	Velocity []float64 `yaml:"velocity" validate:"len=3"`
}

// DefaultConfig reproduces the Earth, Moon and spacecraft run with nine
// steps of six minutes.
func DefaultConfig() *Config {
	return FromPhysics("earth-moon", physics.EarthMoon(DefaultDt, DefaultNumSteps), [3]string{"earth", "moon", "spacecraft"})
}

// FromPhysics converts a simulator config into its file form.
func FromPhysics(name string, pc physics.Config, bodyNames [3]string) *Config {
	cfg := &Config{
		Name:     name,
		Dt:       pc.Dt,
		NumSteps: pc.NumSteps,
		G:        pc.G,
		Bodies:   make([]BodyConfig, dynamo.NumBodies),
		FrameMs:  int(DefaultFrameDuration / time.Millisecond),
	}
	for i, b := range pc.Bodies {
		cfg.Bodies[i] = BodyConfig{
			Name:     bodyNames[i],
			Mass:     b.Mass,
			Position: b.Position.Slice(),
			Velocity: b.Velocity.Slice(),
		}
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate checks field ranges. Masses are deliberately unchecked.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalid, f.Namespace(), f.Tag(), f.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Physics builds the simulator config. Call Validate first; short
// vectors are read as zero.
func (c *Config) Physics() physics.Config {
	pc := physics.Config{
		Dt:       c.Dt,
		NumSteps: c.NumSteps,
		G:        c.G,
	}
	for i := 0; i < dynamo.NumBodies && i < len(c.Bodies); i++ {
		b := c.Bodies[i]
		pc.Bodies[i] = physics.Body{
			Mass:     b.Mass,
			Position: vec(b.Position),
			Velocity: vec(b.Velocity),
		}
	}
	return pc
}

func (c *Config) Deltas() physics.MassDeltas {
	var d physics.MassDeltas
	copy(d[:], c.MassDeltas)
	return d
}

func (c *Config) FrameDuration() time.Duration {
	return time.Duration(c.FrameMs) * time.Millisecond
}

func (c *Config) BodyNames() [3]string {
	var names [3]string
	for i := 0; i < dynamo.NumBodies && i < len(c.Bodies); i++ {
		names[i] = c.Bodies[i].Name
	}
	return names
}

func vec(s []float64) dynamo.Vec3 {
	var a [3]float64
	copy(a[:], s)
	return dynamo.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
