// Package integrators advances a physics.State by one timestep.
//
// The methods are selected at construction and invoked uniformly through
// [Integrator]:
//
//   - [Euler]: semi-implicit (symplectic) Euler, first order
//   - [RK4]: classical 4th-order Runge-Kutta with fixed sub-stepping
//   - [Verlet]: velocity Verlet, second order and symplectic
package integrators

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/orrery/internal/physics"
)

// Integrator advances every body's position and velocity by dt in place.
// Implementations keep no data besides their configuration and never modify
// the state's masses.
type Integrator interface {
	Step(s *physics.State, dt float64)
	Name() string
}

// Kind enumerates the available integration methods.
type Kind int

const (
	KindEuler Kind = iota
	KindRK4
	KindVerlet
)

func (k Kind) String() string {
	switch k {
	case KindEuler:
		return "euler"
	case KindRK4:
		return "rk4"
	case KindVerlet:
		return "verlet"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec is a serializable integrator choice.
type Spec struct {
	Kind     Kind
	Substeps int
}

func (s Spec) String() string {
	if s.Kind == KindRK4 {
		return fmt.Sprintf("rk4(substeps=%d)", normalizeSubsteps(s.Substeps))
	}
	return s.Kind.String()
}

var constructors = map[string]func(substeps int) Integrator{
	KindEuler.String():  func(int) Integrator { return NewEuler() },
	KindRK4.String():    func(n int) Integrator { return NewRK4(n) },
	KindVerlet.String(): func(int) Integrator { return NewVerlet() },
}

// New builds the integrator described by spec.
func New(spec Spec) (Integrator, error) {
	fn, ok := constructors[spec.Kind.String()]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", spec.Kind)
	}
	return fn(spec.Substeps), nil
}

// Parse resolves an integrator name as used on the command line and in
// config files. Names are case-insensitive.
func Parse(name string, substeps int) (Spec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euler":
		return Spec{Kind: KindEuler}, nil
	case "rk4":
		return Spec{Kind: KindRK4, Substeps: normalizeSubsteps(substeps)}, nil
	case "verlet":
		return Spec{Kind: KindVerlet}, nil
	default:
		return Spec{}, fmt.Errorf("unknown integrator: %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

// ByName is Parse followed by New.
func ByName(name string, substeps int) (Integrator, error) {
	spec, err := Parse(name, substeps)
	if err != nil {
		return nil, err
	}
	return New(spec)
}

// Names lists the registered integrator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeSubsteps(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
