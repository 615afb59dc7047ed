package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Member is one independent system in an Ensemble. Metrics are per member;
// a Metric value must not be shared between members. A positive Steps
// overrides the ensemble-wide step count.
type Member struct {
	Label   string
	System  *System
	Steps   int
	Metrics []Metric
	Options []RunOption
}

// Ensemble runs independent systems concurrently. Each system is touched by
// exactly one goroutine.
type Ensemble struct {
	members []Member
	limit   int
}

func NewEnsemble(members ...Member) *Ensemble {
	return &Ensemble{members: members, limit: runtime.GOMAXPROCS(0)}
}

func (e *Ensemble) Add(m Member) { e.members = append(e.members, m) }

// SetLimit caps the number of members stepping at once. n <= 0 means no cap.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

func (e *Ensemble) Len() int { return len(e.members) }

// Run advances every member by steps ticks, or by its own Steps. Results are in member order. The
// first failure cancels the others.
func (e *Ensemble) Run(ctx context.Context, steps int) ([]*Result, error) {
	results := make([]*Result, len(e.members))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, m := range e.members {
		g.Go(func() error {
			opts := append([]RunOption{WithMetrics(m.Metrics...)}, m.Options...)
			n := steps
			if m.Steps > 0 {
				n = m.Steps
			}
			res, err := m.System.Run(ctx, n, opts...)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
