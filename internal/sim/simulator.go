package sim

import (
	"context"
	"math"

	"github.com/san-kum/orrery/internal/physics"
)

type runOptions struct {
	metrics       []Metric
	observers     []Observer
	stopOnInvalid bool
}

type RunOption func(*runOptions)

func WithMetrics(m ...Metric) RunOption {
	return func(o *runOptions) { o.metrics = append(o.metrics, m...) }
}

func WithObservers(obs ...Observer) RunOption {
	return func(o *runOptions) { o.observers = append(o.observers, obs...) }
}

// StopOnInvalid ends the run with a StepError as soon as the state is no
// longer finite.
func StopOnInvalid() RunOption {
	return func(o *runOptions) { o.stopOnInvalid = true }
}

// Run calls Update steps times. The context is checked between ticks, never
// during one, so a cancelled run always leaves the system at a tick
// boundary. The partial result is returned alongside ctx.Err().
func (s *System) Run(ctx context.Context, steps int, opts ...RunOption) (*Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	for _, m := range o.metrics {
		m.Reset()
	}

	st := s.State()
	result := &Result{
		InitialEnergy: physics.TotalEnergy(st),
		Metrics:       make(map[string]float64),
	}
	for _, m := range o.metrics {
		m.Observe(st, s.elapsed)
	}

	start := s.elapsed
	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		s.Update()
		result.Steps++

		st = s.State()
		for _, m := range o.metrics {
			m.Observe(st, s.elapsed)
		}
		if len(o.observers) > 0 {
			bodies := s.Bodies()
			for _, obs := range o.observers {
				obs.OnStep(bodies, s.elapsed)
			}
		}

		if o.stopOnInvalid && !st.IsValid() {
			runErr = StepError{Step: s.steps, Time: s.elapsed}
			break
		}
	}

	result.Elapsed = s.elapsed - start
	result.FinalEnergy = physics.TotalEnergy(st)
	if result.InitialEnergy != 0 {
		result.EnergyDrift = math.Abs(result.FinalEnergy-result.InitialEnergy) / math.Abs(result.InitialEnergy)
	}
	for _, m := range o.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}
