package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/analysis"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sys, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}

	rec := storage.NewRecorder(cfg.RecordEvery, sys.Bodies(), sys.Elapsed())
	ms := []sim.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewAngularMomentumDrift(),
		metrics.NewStability(escape),
	}
	if sys.Len() > 1 {
		ms = append(ms, metrics.NewMinSeparation())
	}

	ctx, stop := interruptible()
	defer stop()

	fmt.Printf("running %s: %d bodies, %d steps of %gs (%s)\n",
		cfg.Name, sys.Len(), cfg.Steps, cfg.Timestep, sys.Integrator().Name())
	start := time.Now()

	result, err := sys.Run(ctx, cfg.Steps, sim.WithMetrics(ms...), sim.WithObservers(rec), sim.StopOnInvalid())
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted, saving partial run", "steps", result.Steps)
	case err != nil:
		return err
	}
	if rec.Err() != nil {
		return rec.Err()
	}

	wall := time.Since(start)
	logger.Debug("run finished", "wall", wall, "samples", rec.Trajectory().Len())

	runID, err := st.Save(storage.RunMetadata{
		Name:        cfg.Name,
		Integrator:  cfg.Integrator,
		Substeps:    cfg.Substeps,
		Timestep:    cfg.Timestep,
		Steps:       result.Steps,
		Elapsed:     result.Elapsed,
		RecordEvery: cfg.RecordEvery,
		EnergyDrift: result.EnergyDrift,
		Bodies:      storage.BodyInfos(sys.Bodies()),
		Metrics:     result.Metrics,
	}, rec.Trajectory())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", wall.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("simulated: %.2f days\n", result.Elapsed/86400)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble()
	for _, name := range args[1:] {
		c := cfg.Clone()
		c.Integrator = name
		sys, err := sim.FromConfig(c)
		if err != nil {
			return err
		}
		ens.Add(sim.Member{
			Label:   sys.Integrator().Name(),
			System:  sys,
			Metrics: []sim.Metric{metrics.NewEnergyDrift(), metrics.NewAngularMomentumDrift()},
		})
	}

	ctx, stop := interruptible()
	defer stop()

	fmt.Printf("comparing %d integrators on %s, %d steps of %gs\n\n", ens.Len(), cfg.Name, cfg.Steps, cfg.Timestep)
	start := time.Now()
	results, err := ens.Run(ctx, cfg.Steps)
	if err != nil {
		return err
	}
	logger.Debug("ensemble finished", "wall", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL DRIFT\tMAX DRIFT\tANG MOM DRIFT")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.3e\n",
			args[i+1],
			res.EnergyDrift,
			res.Metrics["energy_drift"],
			res.Metrics["angular_momentum_drift"],
		)
	}
	return w.Flush()
}

func sweepTimesteps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()

	points, err := analysis.TimestepSweep(ctx, cfg, sweepSteps, sweepSpan)
	if err != nil {
		return err
	}

	fmt.Printf("%s with %s over %.1f days\n\n", cfg.Name, cfg.Integrator, sweepSpan/86400)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tFINAL DRIFT\tMAX DRIFT")
	for _, p := range points {
		fmt.Fprintf(w, "%gs\t%d\t%.3e\t%.3e\n", p.Timestep, p.Steps, p.EnergyDrift, p.MaxDrift)
	}
	return w.Flush()
}

func lyapunovRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	id := -1
	for i, b := range cfg.Bodies {
		if b.Name == bodyName {
			id = i
			break
		}
	}
	if id < 0 {
		return fmt.Errorf("%w: %q", sim.ErrNoSuchBody, bodyName)
	}

	ctx, stop := interruptible()
	defer stop()

	lambda, err := analysis.LyapunovExponent(ctx, cfg, id, perturbation, cfg.Steps)
	if err != nil {
		return err
	}

	fmt.Printf("lyapunov exponent (%s, d0=%gm): %.4e 1/s\n", bodyName, perturbation, lambda)
	if lambda > 0 {
		fmt.Printf("e-folding time: %.2f years\n", 1/lambda/(365.25*86400))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBODIES\tINTEG\tDT\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\t%gs\t%d\n", name, len(p.Bodies), p.Integrator, p.Timestep, p.Steps)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "orrery.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %d bodies)\n", path, cfg.Name, len(cfg.Bodies))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	opts := viz.Options{
		StepsPerFrame: stepsPerFrame,
		FPS:           frameRate,
		TrailLength:   trailLength,
		Theme:         theme,
		GIFPath:       gifPath,
	}
	if len(args) == 0 && configFile == "" {
		return viz.RunMenu(opts)
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	sys, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Name = cfg.Name
	return viz.Run(sys, opts)
}
