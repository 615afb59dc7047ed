package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/physics"
	"github.com/san-kum/orrery/internal/storage"
)

type Summary struct {
	Mean           float64
	StdDev         float64
	Min            float64
	Max            float64
	RelativeSpread float64
}

// Summarize computes spread statistics. RelativeSpread is (Max-Min)/|Mean|,
// or zero for a zero mean.
func Summarize(series []float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}

	mean, std := stat.MeanStdDev(series, nil)
	if len(series) == 1 {
		std = 0
	}
	s := Summary{
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(series),
		Max:    floats.Max(series),
	}
	if mean != 0 {
		s.RelativeSpread = (s.Max - s.Min) / math.Abs(mean)
	}
	return s, nil
}

// EnergySeries computes the total energy at every sample. masses must be in
// trajectory column order.
func EnergySeries(traj *storage.Trajectory, masses []float64) ([]float64, error) {
	if len(masses) != len(traj.Names) {
		return nil, fmt.Errorf("%d masses for %d bodies", len(masses), len(traj.Names))
	}
	out := make([]float64, traj.Len())
	for k := range traj.Times {
		st, err := physics.NewState(traj.Positions[k], traj.Velocities[k], masses)
		if err != nil {
			return nil, err
		}
		out[k] = physics.TotalEnergy(st)
	}
	return out, nil
}

// Distances returns |p| for every point of a path.
func Distances(path []geometry.Vector3) []float64 {
	out := make([]float64, len(path))
	for i, p := range path {
		out[i] = p.Magnitude()
	}
	return out
}
