package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/sim"
)

func TestLyapunovExponent(t *testing.T) {
	cfg := config.GetPreset("earth-sun")

	lambda, err := LyapunovExponent(context.Background(), cfg, 1, 1000, 240)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		t.Errorf("expected finite exponent, got %f", lambda)
	}

	again, _ := LyapunovExponent(context.Background(), cfg, 1, 1000, 240)
	if again != lambda {
		t.Errorf("not deterministic: %g vs %g", lambda, again)
	}
	if cfg.Bodies[1].Position[0] != 149.6e9 {
		t.Error("input config was modified")
	}
}

func TestLyapunovExponent_IndependentOfTimestep(t *testing.T) {
	const span = 30 * 86400.0

	var lambdas []float64
	for _, dt := range []float64{600, 3600, 21600} {
		cfg := config.GetPreset("earth-sun")
		cfg.Timestep = dt
		lambda, err := LyapunovExponent(context.Background(), cfg, 1, 1000, int(span/dt))
		if err != nil {
			t.Fatal(err)
		}
		// a Kepler orbit separates linearly, so the rate is tiny
		if math.Abs(lambda) > 1e-6 {
			t.Errorf("dt=%g: exponent %e too large for a two-body orbit", dt, lambda)
		}
		lambdas = append(lambdas, lambda)
	}

	for i, l := range lambdas[1:] {
		if diff := math.Abs(l - lambdas[0]); diff > 0.02*math.Abs(lambdas[0])+1e-10 {
			t.Errorf("estimate %d differs with timestep: %e vs %e", i+1, l, lambdas[0])
		}
	}
}

func TestLyapunovExponent_Errors(t *testing.T) {
	cfg := config.GetPreset("earth-sun")

	if _, err := LyapunovExponent(context.Background(), cfg, 1, 0, 10); err == nil {
		t.Error("expected error for zero perturbation")
	}
	if _, err := LyapunovExponent(context.Background(), cfg, 5, 1, 10); !errors.Is(err, sim.ErrNoSuchBody) {
		t.Errorf("expected ErrNoSuchBody, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LyapunovExponent(ctx, cfg, 1, 1, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	if l, err := LyapunovExponent(context.Background(), cfg, 1, 1, 0); err != nil || l != 0 {
		t.Errorf("zero steps: %f, %v", l, err)
	}
}

func TestTimestepSweep(t *testing.T) {
	cfg := config.GetPreset("earth-sun")
	cfg.Integrator = "euler"

	points, err := TimestepSweep(context.Background(), cfg, []float64{3600, 86400}, 30*86400)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Steps != 720 || points[1].Steps != 30 {
		t.Errorf("unexpected step counts: %+v", points)
	}
	if points[1].MaxDrift <= points[0].MaxDrift {
		t.Errorf("larger timestep should drift more: %+v", points)
	}
	for _, p := range points {
		if p.MaxDrift < p.EnergyDrift {
			t.Errorf("max drift below final drift: %+v", p)
		}
	}
}

func TestTimestepSweep_Errors(t *testing.T) {
	cfg := config.GetPreset("earth-sun")
	if _, err := TimestepSweep(context.Background(), cfg, nil, 100); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := TimestepSweep(context.Background(), cfg, []float64{-1}, 100); err == nil {
		t.Error("expected error for negative timestep")
	}
}
