// Package body defines the persistent celestial body entity owned by the
// simulation.
package body

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orrery/internal/geometry"
)

// ErrInvalidBody is wrapped by every ValidationError.
var ErrInvalidBody = errors.New("body: invalid celestial body")

// ValidationError reports a body rejected at construction.
type ValidationError struct {
	Body  string
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("body %q: %s must be positive, got %g", e.Body, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidBody
}

// Kind classifies a body for display purposes.
type Kind int

const (
	Star Kind = iota
	Planet
	Moon
	Satellite
)

var kindNames = [...]string{"star", "planet", "moon", "satellite"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a case-insensitive name back to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body kind: %q", s)
}

// Color holds normalized RGB components in [0, 1].
type Color struct {
	R, G, B float64
}

// Hex renders the color as #rrggbb, clamping out-of-range components.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// CelestialBody is a simulated astronomical object. Position is in metres,
// velocity in metres per second, mass in kilograms and radius in kilometres.
type CelestialBody struct {
	Name     string
	Kind     Kind
	Position geometry.Vector3
	Velocity geometry.Vector3
	Mass     float64
	Radius   float64
	Color    Color
}

// New builds a body, rejecting non-positive mass or radius.
func New(name string, kind Kind, position geometry.Vector3, radiusKm, mass float64, velocity geometry.Vector3, color Color) (CelestialBody, error) {
	b := CelestialBody{
		Name:     name,
		Kind:     kind,
		Position: position,
		Velocity: velocity,
		Mass:     mass,
		Radius:   radiusKm,
		Color:    color,
	}
	if err := b.Validate(); err != nil {
		return CelestialBody{}, err
	}
	return b, nil
}

// Validate checks the construction invariants. NaN counts as non-positive.
func (b CelestialBody) Validate() error {
	if !(b.Mass > 0) {
		return &ValidationError{Body: b.Name, Field: "mass", Value: b.Mass}
	}
	if !(b.Radius > 0) {
		return &ValidationError{Body: b.Name, Field: "radius", Value: b.Radius}
	}
	return nil
}

// DisplaySize is the marker size renderers derive from the physical radius:
// (ln(radius_km) - 10) / 2. Bodies smaller than e^10 km get negative sizes;
// callers clamp as they see fit.
func (b CelestialBody) DisplaySize() float64 {
	return (math.Log(b.Radius) - 10) / 2
}
