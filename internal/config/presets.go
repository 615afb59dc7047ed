package config

import (
	"math"
	"sort"

	"github.com/san-kum/orrery/internal/physics"
)

// StandardBodies is the Sun and the eight planets, each starting on the +x
// axis with its mean orbital speed along +y.
func StandardBodies() []BodyConfig {
	return []BodyConfig{
		{Name: "Sun", Kind: "star", Radius: 696_340, Mass: 1.989e30, Color: [3]float64{1.0, 1.0, 0.0}},
		{Name: "Mercury", Kind: "planet", Position: [3]float64{57.9e9, 0, 0}, Velocity: [3]float64{0, 47360, 0}, Radius: 2_439.7, Mass: 3.285e23, Color: [3]float64{0.7, 0.7, 0.7}},
		{Name: "Venus", Kind: "planet", Position: [3]float64{108.2e9, 0, 0}, Velocity: [3]float64{0, 35020, 0}, Radius: 6_051.8, Mass: 4.867e24, Color: [3]float64{0.9, 0.7, 0.5}},
		{Name: "Earth", Kind: "planet", Position: [3]float64{149.6e9, 0, 0}, Velocity: [3]float64{0, 29780, 0}, Radius: 6_371.0, Mass: 5.972e24, Color: [3]float64{0.2, 0.5, 1.0}},
		{Name: "Mars", Kind: "planet", Position: [3]float64{227.9e9, 0, 0}, Velocity: [3]float64{0, 24080, 0}, Radius: 3_389.5, Mass: 6.39e23, Color: [3]float64{1.0, 0.3, 0.0}},
		{Name: "Jupiter", Kind: "planet", Position: [3]float64{778.5e9, 0, 0}, Velocity: [3]float64{0, 13070, 0}, Radius: 69_911.0, Mass: 1.898e27, Color: [3]float64{0.8, 0.6, 0.4}},
		{Name: "Saturn", Kind: "planet", Position: [3]float64{1.434e12, 0, 0}, Velocity: [3]float64{0, 9680, 0}, Radius: 58_232.0, Mass: 5.683e26, Color: [3]float64{0.9, 0.8, 0.5}},
		{Name: "Uranus", Kind: "planet", Position: [3]float64{2.871e12, 0, 0}, Velocity: [3]float64{0, 6800, 0}, Radius: 25_362.0, Mass: 8.681e25, Color: [3]float64{0.5, 0.8, 0.9}},
		{Name: "Neptune", Kind: "planet", Position: [3]float64{4.495e12, 0, 0}, Velocity: [3]float64{0, 5430, 0}, Radius: 24_622.0, Mass: 1.024e26, Color: [3]float64{0.0, 0.0, 0.8}},
	}
}

func pick(names ...string) []BodyConfig {
	all := StandardBodies()
	out := make([]BodyConfig, 0, len(names))
	for _, name := range names {
		for _, b := range all {
			if b.Name == name {
				out = append(out, b)
			}
		}
	}
	return out
}

// binaryStars places two solar-mass stars one AU apart on a circular mutual
// orbit about the origin.
func binaryStars() []BodyConfig {
	const m, d = 1.989e30, 1.496e11
	v := math.Sqrt(physics.G * m / (2 * d))
	return []BodyConfig{
		{Name: "Alpha", Kind: "star", Position: [3]float64{-d / 2, 0, 0}, Velocity: [3]float64{0, -v, 0}, Radius: 696_340, Mass: m, Color: [3]float64{1.0, 0.9, 0.6}},
		{Name: "Beta", Kind: "star", Position: [3]float64{d / 2, 0, 0}, Velocity: [3]float64{0, v, 0}, Radius: 696_340, Mass: m, Color: [3]float64{0.6, 0.7, 1.0}},
	}
}

var Presets = map[string]*Config{
	"standard": DefaultConfig(),
	"earth-sun": {
		Name: "earth-sun", Integrator: "rk4", Substeps: 4, Timestep: 3600, Steps: 8766, RecordEvery: 24,
		Bodies: pick("Sun", "Earth"),
	},
	"inner": {
		Name: "inner", Integrator: "rk4", Substeps: 4, Timestep: 1800, Steps: 17532, RecordEvery: 48,
		Bodies: pick("Sun", "Mercury", "Venus", "Earth", "Mars"),
	},
	"outer": {
		Name: "outer", Integrator: "rk4", Substeps: 1, Timestep: 86400, Steps: 60225, RecordEvery: 30,
		Bodies: pick("Sun", "Jupiter", "Saturn", "Uranus", "Neptune"),
	},
	"binary-star": {
		Name: "binary-star", Integrator: "rk4", Substeps: 2, Timestep: 3600, Steps: 8766, RecordEvery: 24,
		Bodies: binaryStars(),
	},
	"euler-demo": {
		Name: "euler-demo", Integrator: "euler", Timestep: 3600, Steps: 8766, RecordEvery: 24,
		Bodies: pick("Sun", "Earth"),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
