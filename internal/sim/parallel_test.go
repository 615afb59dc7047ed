package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/orrery/internal/integrators"
)

func TestEnsemble(t *testing.T) {
	euler := earthSun(t)
	euler.SetIntegrator(integrators.NewEuler())
	rk4 := earthSun(t)

	e := NewEnsemble(Member{Label: "euler", System: euler})
	e.Add(Member{Label: "rk4", System: rk4, Metrics: []Metric{&countingMetric{}}})

	results, err := e.Run(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].EnergyDrift <= results[1].EnergyDrift {
		t.Errorf("euler drift %e should exceed rk4 drift %e", results[0].EnergyDrift, results[1].EnergyDrift)
	}
	if results[1].Metrics["count"] != 101 {
		t.Errorf("member metric not wired: %v", results[1].Metrics)
	}

	solo := earthSun(t)
	solo.Run(context.Background(), 100)
	if solo.Bodies()[1].Position != rk4.Bodies()[1].Position {
		t.Error("concurrent run differs from sequential run")
	}
}

func TestEnsemble_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEnsemble(Member{System: earthSun(t)}, Member{System: earthSun(t)})
	e.SetLimit(1)
	if _, err := e.Run(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
