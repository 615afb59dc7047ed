package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/integrators"
)

var (
	dataDir    string
	verbose    bool
	configFile string

	dt          float64
	steps       int
	integrator  string
	substeps    int
	recordEvery int
	escape      float64

	outFile   string
	svgWidth  int
	svgHeight int

	bodyName   string
	centreName string
	portrait   bool

	sweepSteps   []float64
	sweepSpan    float64
	perturbation float64

	frameRate     int
	stepsPerFrame int
	trailLength   int
	theme         string
	gifPath       string

	preset string
	force  bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "orrery"})

func main() {
	rootCmd := &cobra.Command{
		Use:           "orrery",
		Short:         "n-body solar system simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store its trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSystemFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "every", config.DefaultRecordEvery, "record every n ticks")
	runCmd.Flags().Float64Var(&escape, "escape", 1.5e13, "stability radius in metres")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and distance of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	addPairFlags(plotCmd)
	plotCmd.Flags().BoolVar(&portrait, "portrait", false, "also draw a top-down orbit portrait")

	periodCmd := &cobra.Command{
		Use:   "period [run_id]",
		Short: "estimate the orbital period of a body",
		Args:  cobra.MaximumNArgs(1),
		RunE:  periodRun,
	}
	addPairFlags(periodCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the orbits of a run as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same system",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSystemFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "energy drift as a function of timestep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepTimesteps,
	}
	addSystemFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepSteps, "dts", []float64{900, 1800, 3600, 7200, 14400, 28800}, "timesteps to try")
	sweepCmd.Flags().Float64Var(&sweepSpan, "span", 365.25*86400, "simulated seconds per timestep")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [preset]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  lyapunovRun,
	}
	addSystemFlags(lyapunovCmd)
	lyapunovCmd.Flags().StringVar(&bodyName, "body", "Earth", "body to perturb")
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1000, "initial displacement in metres")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a preset as an editable YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "standard", "preset to write")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSystemFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFrame, "speed", 4, "ticks per frame")
	liveCmd.Flags().IntVar(&trailLength, "trail", 200, "trail length in frames")
	liveCmd.Flags().StringVar(&theme, "theme", "deep-space", "color theme")
	liveCmd.Flags().StringVar(&gifPath, "gif", "orrery.gif", "where g-recordings are saved")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, periodCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		compareCmd, sweepCmd, lyapunovCmd, presetsCmd, initCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "system definition (YAML)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultTimestep, "timestep in seconds")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of ticks")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, fmt.Sprintf("integrator %v", integrators.Names()))
	cmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "rk4 substeps per tick")
}

func addPairFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&bodyName, "body", "Earth", "body to analyse")
	cmd.Flags().StringVar(&centreName, "centre", "Sun", "body the orbit is measured around")
}

// loadConfig resolves the system for a command: a --config file wins over
// the preset argument, and explicitly set flags win over both.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		logger.Debug("loaded config", "path", configFile, "bodies", len(cfg.Bodies))
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Timestep = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("substeps") {
		cfg.Substeps = substeps
	}
	if flags.Lookup("every") != nil && flags.Changed("every") {
		cfg.RecordEvery = recordEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("system", "name", cfg.Name, "integrator", cfg.Integrator, "substeps", cfg.Substeps,
		"dt", cfg.Timestep, "steps", cfg.Steps)
	return cfg, nil
}
