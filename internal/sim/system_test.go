package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/integrators"
)

func TestAddBody(t *testing.T) {
	s := New(3600, integrators.NewEuler())
	for i, name := range []string{"A", "B", "C"} {
		b, _ := body.New(name, body.Moon, geometry.New(float64(i), 0, 0), 1, 1, geometry.Zero, body.Color{})
		id, err := s.AddBody(b)
		if err != nil {
			t.Fatal(err)
		}
		if id != i {
			t.Errorf("expected id %d, got %d", i, id)
		}
	}

	bad := body.CelestialBody{Name: "ghost", Mass: 0, Radius: 1}
	if _, err := s.AddBody(bad); !errors.Is(err, body.ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody, got %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("rejected body should not be added, len=%d", s.Len())
	}
}

func TestUpdate_EmptySystem(t *testing.T) {
	s := New(60, integrators.NewRK4(1))
	s.Update()
	if s.Steps() != 1 || s.Elapsed() != 60 {
		t.Errorf("empty update should still count: steps=%d elapsed=%f", s.Steps(), s.Elapsed())
	}
}

func TestUpdate_MatchesIntegrator(t *testing.T) {
	s := earthSun(t)
	st := s.State()
	integrators.NewRK4(4).Step(st, 3600)

	s.Update()
	for i, b := range s.Bodies() {
		if b.Position != st.Positions[i] || b.Velocity != st.Velocities[i] {
			t.Errorf("body %d: write-back differs from integrator output", i)
		}
	}
}

func TestBodies_ReturnsCopy(t *testing.T) {
	s := earthSun(t)
	bodies := s.Bodies()
	bodies[0].Mass = 1
	bodies[1].Name = "Mallory"

	if b, _ := s.Body(0); b.Mass != 1.989e30 {
		t.Error("Bodies exposed internal storage")
	}
	if _, ok := s.FindByName("Earth"); !ok {
		t.Error("Earth renamed through copy")
	}
}

func TestLookup(t *testing.T) {
	s := New(3600, integrators.NewRK4(4))
	if err := s.InitializeStandard(); err != nil {
		t.Fatal(err)
	}

	id, ok := s.FindByName("Earth")
	if !ok || id != 3 {
		t.Errorf("FindByName(Earth) = %d, %v", id, ok)
	}
	if _, ok := s.FindByName("earth"); ok {
		t.Error("name match must be exact")
	}

	if _, err := s.Body(42); !errors.Is(err, ErrNoSuchBody) {
		t.Errorf("expected ErrNoSuchBody, got %v", err)
	}
	if _, err := s.Body(-1); !errors.Is(err, ErrNoSuchBody) {
		t.Errorf("expected ErrNoSuchBody for negative id, got %v", err)
	}

	if stars := s.BodiesOfKind(body.Star); len(stars) != 1 || stars[0] != 0 {
		t.Errorf("stars = %v", stars)
	}
	if planets := s.BodiesOfKind(body.Planet); len(planets) != 8 {
		t.Errorf("expected 8 planets, got %d", len(planets))
	}
	if moons := s.BodiesOfKind(body.Moon); len(moons) != 0 {
		t.Errorf("expected no moons, got %v", moons)
	}
}

func TestInitializeStandard(t *testing.T) {
	s := New(1, integrators.NewEuler())
	s.Update()
	if err := s.InitializeStandard(); err != nil {
		t.Fatal(err)
	}

	if s.Len() != 9 {
		t.Errorf("expected 9 bodies, got %d", s.Len())
	}
	if s.Timestep() != 3600 {
		t.Errorf("expected 3600s, got %f", s.Timestep())
	}
	if s.Integrator().Name() != "rk4" {
		t.Errorf("expected rk4, got %s", s.Integrator().Name())
	}
	if s.Steps() != 0 || s.Elapsed() != 0 {
		t.Error("counters not reset")
	}
}

func TestTimestep_Unvalidated(t *testing.T) {
	s := earthSun(t)

	s.ScaleTimestep(1.1)
	if math.Abs(s.Timestep()-3960) > 1e-9 {
		t.Errorf("expected 3960, got %f", s.Timestep())
	}

	for _, dt := range []float64{0, -3600, 1e12} {
		s.SetTimestep(dt)
		if s.Timestep() != dt {
			t.Errorf("SetTimestep(%g) stored %g", dt, s.Timestep())
		}
	}

	s.SetTimestep(0)
	before := s.Bodies()
	s.Update()
	after := s.Bodies()
	for i := range before {
		if before[i].Position != after[i].Position {
			t.Errorf("zero timestep moved body %d", i)
		}
	}
}

func TestSetIntegrator(t *testing.T) {
	s := earthSun(t)
	s.SetIntegrator(integrators.NewEuler())
	if s.Integrator().Name() != "euler" {
		t.Errorf("expected euler, got %s", s.Integrator().Name())
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.GetPreset("binary-star")
	s, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(cfg.Bodies) || s.Timestep() != cfg.Timestep {
		t.Errorf("system does not match config: len=%d dt=%f", s.Len(), s.Timestep())
	}

	cfg.Integrator = "leapfrog"
	if _, err := FromConfig(cfg); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
