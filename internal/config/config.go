package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/integrators"
)

const (
	DefaultTimestep    = 3600.0
	DefaultIntegrator  = "rk4"
	DefaultSubsteps    = 4
	DefaultSteps       = 8766
	DefaultRecordEvery = 24
)

// Config describes a complete system: its bodies, integrator and timestep.
type Config struct {
	Name        string       `yaml:"name"`
	Integrator  string       `yaml:"integrator"`
	Substeps    int          `yaml:"substeps"`
	Timestep    float64      `yaml:"timestep"`
	Steps       int          `yaml:"steps"`
	RecordEvery int          `yaml:"record_every"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

// BodyConfig is one row of the body table. Position is in metres, velocity
// in m/s, mass in kg, radius in km and color components in [0, 1].
type BodyConfig struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius_km"`
	Color    [3]float64 `yaml:"color"`
}

// DefaultConfig returns the standard solar system: nine bodies, a one hour
// timestep and RK4.
func DefaultConfig() *Config {
	return &Config{
		Name:        "standard",
		Integrator:  DefaultIntegrator,
		Substeps:    DefaultSubsteps,
		Timestep:    DefaultTimestep,
		Steps:       DefaultSteps,
		RecordEvery: DefaultRecordEvery,
		Bodies:      StandardBodies(),
	}
}

// Load reads a YAML file layered over DefaultConfig. A file that lists
// bodies replaces the default table entirely.
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

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}

// IntegratorSpec resolves the integrator name and substep count.
func (c *Config) IntegratorSpec() (integrators.Spec, error) {
	return integrators.Parse(c.Integrator, c.Substeps)
}

// CelestialBodies converts the body table, validating every row.
func (c *Config) CelestialBodies() ([]body.CelestialBody, error) {
	bodies := make([]body.CelestialBody, 0, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := bc.Body()
		if err != nil {
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Validate checks everything needed to build a simulation. The timestep is
// not checked.
func (c *Config) Validate() error {
	if _, err := c.IntegratorSpec(); err != nil {
		return err
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("config %q has no bodies", c.Name)
	}
	_, err := c.CelestialBodies()
	return err
}

func (bc BodyConfig) Body() (body.CelestialBody, error) {
	kind, err := body.ParseKind(bc.Kind)
	if err != nil {
		return body.CelestialBody{}, fmt.Errorf("%s: %w", bc.Name, err)
	}
	return body.New(
		bc.Name,
		kind,
		geometry.New(bc.Position[0], bc.Position[1], bc.Position[2]),
		bc.Radius,
		bc.Mass,
		geometry.New(bc.Velocity[0], bc.Velocity[1], bc.Velocity[2]),
		body.Color{R: bc.Color[0], G: bc.Color[1], B: bc.Color[2]},
	)
}

// FromBody is the inverse of BodyConfig.Body.
func FromBody(b body.CelestialBody) BodyConfig {
	return BodyConfig{
		Name:     b.Name,
		Kind:     b.Kind.String(),
		Position: [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
		Velocity: [3]float64{b.Velocity.X, b.Velocity.Y, b.Velocity.Z},
		Mass:     b.Mass,
		Radius:   b.Radius,
		Color:    [3]float64{b.Color.R, b.Color.G, b.Color.B},
	}
}
