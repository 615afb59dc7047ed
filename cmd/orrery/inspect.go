package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/analysis"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/storage"
)

const day = 86400.0

// openRun loads a stored run, defaulting to the most recent one.
func openRun(args []string) (*storage.RunMetadata, *storage.Trajectory, error) {
	st := storage.New(dataDir)
	runID := ""
	if len(args) > 0 {
		runID = args[0]
	} else {
		id, err := st.Latest()
		if err != nil {
			return nil, nil, err
		}
		runID = id
		logger.Debug("using latest run", "id", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if traj.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, traj, nil
}

func bodyPair(traj *storage.Trajectory) (int, int, error) {
	bi, ci := traj.Index(bodyName), traj.Index(centreName)
	if bi < 0 {
		return 0, 0, fmt.Errorf("no body named %q in run (have %v)", bodyName, traj.Names)
	}
	if ci < 0 {
		return 0, 0, fmt.Errorf("no body named %q in run (have %v)", centreName, traj.Names)
	}
	return bi, ci, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tSTEPS\tDT\tINTEG\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%gs\t%s\t%.2e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			run.Steps,
			run.Timestep,
			run.Integrator,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := openRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s (%d bodies, %s)\n", meta.Name, len(meta.Bodies), meta.Integrator)
	fmt.Printf("samples: %d over %.1f days\n\n", traj.Len(), meta.Elapsed/day)

	masses := make([]float64, len(traj.Names))
	for i, name := range traj.Names {
		for _, b := range meta.Bodies {
			if b.Name == name {
				masses[i] = b.Mass
			}
		}
	}
	energy, err := analysis.EnergySeries(traj, masses)
	if err != nil {
		return err
	}
	e0 := energy[0]
	drift := make([]float64, len(energy))
	for i, e := range energy {
		if e0 != 0 {
			drift[i] = (e - e0) / math.Abs(e0)
		}
	}
	fmt.Println(asciigraph.Plot(drift,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("relative energy error"),
	))

	if sum, err := analysis.Summarize(energy); err == nil {
		fmt.Printf("\nenergy mean %.6e J, std %.3e J, spread %.3e\n\n", sum.Mean, sum.StdDev, sum.RelativeSpread)
	}

	if bi, ci, err := bodyPair(traj); err == nil {
		dist := analysis.Distances(analysis.RelativeTo(traj, bi, ci))
		for i := range dist {
			dist[i] /= 1.495978707e11
		}
		fmt.Println(asciigraph.Plot(dist,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s-%s distance (AU)", bodyName, centreName)),
		))
	} else {
		logger.Warn("skipping distance plot", "err", err)
	}

	if portrait {
		fmt.Println()
		fmt.Println(analysis.OrbitPortrait(traj, 80, 30))
	}
	return nil
}

func periodRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := openRun(args)
	if err != nil {
		return err
	}
	bi, ci, err := bodyPair(traj)
	if err != nil {
		return err
	}

	xs, ys := analysis.Components(analysis.RelativeTo(traj, bi, ci))
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("%s around %s, %d samples over %.1f days\n\n", bodyName, centreName, traj.Len(), meta.Elapsed/day)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPERIOD (days)")
	estimates := []struct {
		name string
		fn   func() (float64, error)
	}{
		{"axis crossings", func() (float64, error) { return analysis.CrossingPeriod(traj.Times, xs, ys) }},
		{"angular rate", func() (float64, error) { return analysis.AngularPeriod(traj.Times, xs, ys) }},
		{"spectrum", func() (float64, error) { return analysis.SpectralPeriod(traj.Times, xs) }},
	}
	for _, e := range estimates {
		p, err := e.fn()
		switch {
		case errors.Is(err, analysis.ErrInsufficientData):
			fmt.Fprintf(w, "%s\t-\n", e.name)
			logger.Debug("period estimate unavailable", "method", e.name, "err", err)
		case err != nil:
			return err
		default:
			fmt.Fprintf(w, "%s\t%.3f\n", e.name, p/day)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if ret, err := analysis.ReturnError(traj, bi); err == nil {
		fmt.Printf("\nreturn error: %.4f%%\n", ret*100)
	}
	return nil
}

// output opens outFile, or stdout when it is empty.
func output(def string) (io.WriteCloser, error) {
	path := outFile
	if path == "" {
		path = def
	}
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, traj, err := openRun(args)
	if err != nil {
		return err
	}
	w, err := output("")
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.ExportJSON(w, meta, traj)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, traj, err := openRun(args)
	if err != nil {
		return err
	}
	w, err := output("")
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.ExportCSV(w, traj)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, traj, err := openRun(args)
	if err != nil {
		return err
	}

	colors := make(map[string]string, len(meta.Bodies))
	for _, b := range meta.Bodies {
		colors[b.Name] = b.Color
	}

	w, err := output(meta.ID + ".svg")
	if err != nil {
		return err
	}
	defer w.Close()

	if err := export.OrbitsToSVG(w, traj, export.SVGOptions{
		Width:  svgWidth,
		Height: svgHeight,
		Colors: colors,
	}); err != nil {
		return err
	}
	if outFile == "" {
		fmt.Printf("wrote %s.svg\n", meta.ID)
	}
	return nil
}
