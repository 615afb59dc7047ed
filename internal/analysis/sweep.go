package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/sim"
)

// SweepPoint is the outcome of running one timestep for the sweep duration.
type SweepPoint struct {
	Timestep    float64
	Steps       int
	EnergyDrift float64
	MaxDrift    float64
}

// TimestepSweep runs cfg once per timestep, concurrently, each for the same
// simulated duration in seconds. Points are returned in the order given.
func TimestepSweep(ctx context.Context, cfg *config.Config, timesteps []float64, duration float64) ([]SweepPoint, error) {
	if len(timesteps) == 0 {
		return nil, fmt.Errorf("%w: no timesteps", ErrInsufficientData)
	}

	ens := sim.NewEnsemble()
	points := make([]SweepPoint, len(timesteps))
	drifts := make([]*metrics.EnergyDrift, len(timesteps))

	for i, dt := range timesteps {
		if dt <= 0 {
			return nil, fmt.Errorf("sweep timestep must be positive, got %g", dt)
		}
		c := cfg.Clone()
		c.Timestep = dt
		s, err := sim.FromConfig(c)
		if err != nil {
			return nil, err
		}
		drifts[i] = metrics.NewEnergyDrift()
		n := max(1, int(math.Round(duration/dt)))
		ens.Add(sim.Member{
			Label:   fmt.Sprintf("dt=%g", dt),
			System:  s,
			Steps:   n,
			Metrics: []sim.Metric{drifts[i]},
		})
		points[i] = SweepPoint{Timestep: dt, Steps: n}
	}

	results, err := ens.Run(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		points[i].EnergyDrift = res.EnergyDrift
		points[i].MaxDrift = drifts[i].Value()
	}
	return points, nil
}
