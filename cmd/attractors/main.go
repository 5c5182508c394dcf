package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	dataDir string

	// patch
	moduleName string
	preset     string
	sampleRate float64
	duration   float64
	decimate   int
	seed       int64
	paramArgs  []string
	cvArgs     []string
	outputs    []string
	noSave     bool

	// run inspection
	xName    string
	yName    string
	channel  string
	samples  int
	nfft     int
	svgOut   string
	jsonOut  string
	braille  bool
	svgWidth int

	// chaos tools
	sysParams    []string
	sysRate      float64
	sysTime      float64
	perturbation float64
	bifMin       float64
	bifMax       float64
	bifSteps     int
	axis         string
	transient    float64
	record       float64
	threshold    float64
	recX         string
	recY         string
	integrator   string
	tolerance    float64

	sweepMin   float64
	sweepMax   float64
	sweepCount int

	// realtime
	leftOut    string
	rightOut   string
	bufferSize int
	gain       float64
	fps        int
	theme      string
	scope      bool
	parallel   int
)

// main wires the attractors CLI and exits 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "attractors",
		Short:        "strange attractor oscillators: render, play and analyze",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attractors", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render [patch.yaml]",
		Short: "render a patch offline and save the signals",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderPatch,
	}
	addPatchFlags(renderCmd)
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without saving the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the outputs of a run (latest if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&samples, "samples", 2000, "number of leading samples to plot")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of two recorded outputs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	addAxisFlags(phaseCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "power spectrum and dominant frequency of one output",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&channel, "channel", "", "output to analyze (first recorded if empty)")
	analyzeCmd.Flags().IntVar(&nfft, "nfft", 4096, "welch segment length")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run signals as CSV to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and signals as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "output", "o", "", "output file (stdout if empty)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a phase portrait as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addAxisFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (stdout if empty)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render through the braille canvas instead of a polyline")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets [module]",
		Short: "list presets for a module",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [lorenz|rossler]",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  lyapunov,
	}
	addSystemFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [system] [param]",
		Short: "bifurcation diagram of the local maxima of one axis",
		Args:  cobra.ExactArgs(2),
		RunE:  bifurcation,
	}
	addSystemFlags(bifurcationCmd)
	bifurcationCmd.Flags().Float64Var(&bifMin, "min", 0, "sweep start (param minimum if unset)")
	bifurcationCmd.Flags().Float64Var(&bifMax, "max", 0, "sweep end (param maximum if unset)")
	bifurcationCmd.Flags().IntVar(&bifSteps, "steps", 60, "number of parameter values")
	bifurcationCmd.Flags().StringVar(&axis, "axis", "z", "axis whose maxima are recorded")
	bifurcationCmd.Flags().Float64Var(&transient, "transient", 0.5, "seconds discarded before recording")
	bifurcationCmd.Flags().Float64Var(&record, "record", 1.0, "seconds recorded")

	poincareCmd := &cobra.Command{
		Use:   "poincare [system]",
		Short: "poincare section through a plane",
		Args:  cobra.ExactArgs(1),
		RunE:  poincare,
	}
	addSystemFlags(poincareCmd)
	poincareCmd.Flags().StringVar(&axis, "axis", "z", "axis crossed upward")
	poincareCmd.Flags().Float64Var(&threshold, "threshold", 27, "plane position on axis")
	poincareCmd.Flags().StringVar(&recX, "x", "x", "recorded horizontal axis")
	poincareCmd.Flags().StringVar(&recY, "y", "y", "recorded vertical axis")

	compareCmd := &cobra.Command{
		Use:   "compare [system]",
		Short: "compare forward euler against another integrator",
		Args:  cobra.ExactArgs(1),
		RunE:  compareIntegrators,
	}
	addSystemFlags(compareCmd)
	compareCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator compared with euler")
	compareCmd.Flags().Float64Var(&tolerance, "tol", 1e-3, "separation counted as divergence")

	automateCmd := &cobra.Command{
		Use:   "automate [scenario.yaml]",
		Short: "render a scripted scenario of knob, CV and cable changes",
		Args:  cobra.ExactArgs(1),
		RunE:  automate,
	}
	addPatchFlags(automateCmd)
	automateCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without saving the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "render once per knob value and tabulate metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  sweep,
	}
	addPatchFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first knob value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last knob value")
	sweepCmd.Flags().IntVar(&sweepCount, "steps", 5, "number of knob values")

	playCmd := &cobra.Command{
		Use:   "play [patch.yaml]",
		Short: "play a patch through the default audio device",
		Args:  cobra.MaximumNArgs(1),
		RunE:  play,
	}
	addPatchFlags(playCmd)
	playCmd.Flags().StringVar(&leftOut, "left", "lorenz_x", "output sent to the left channel")
	playCmd.Flags().StringVar(&rightOut, "right", "rossler_x", "output sent to the right channel")
	playCmd.Flags().IntVar(&bufferSize, "buffer", 512, "frames per audio buffer")
	playCmd.Flags().Float64Var(&gain, "gain", 0.1, "volts to sample gain")
	playCmd.Flags().BoolVar(&scope, "scope", true, "show the live scope while playing")
	addMonitorFlags(playCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [patch.yaml]",
		Short: "live scope of a patch without audio",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watch,
	}
	addPatchFlags(watchCmd)
	addMonitorFlags(watchCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [module]",
		Short: "benchmark samples per second of a module",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bench,
	}
	benchCmd.Flags().Float64Var(&sampleRate, "rate", 44100, "sample rate")
	benchCmd.Flags().IntVar(&parallel, "parallel", 1, "independent modules rendered at once")

	rootCmd.AddCommand(renderCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		presetsCmd, lyapunovCmd, bifurcationCmd, poincareCmd, compareCmd, automateCmd, sweepCmd, playCmd, watchCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addPatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&moduleName, "module", "attractors", "module to patch")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	cmd.Flags().Float64Var(&sampleRate, "rate", 44100, "sample rate")
	cmd.Flags().Float64Var(&duration, "time", 5, "duration in seconds")
	cmd.Flags().IntVar(&decimate, "decimate", 1, "record every nth sample")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for noise modules")
	cmd.Flags().StringArrayVar(&paramArgs, "param", nil, "knob value, name=value (repeatable)")
	cmd.Flags().StringArrayVar(&cvArgs, "cv", nil, "CV volts on an input, name=value (repeatable)")
	cmd.Flags().StringSliceVar(&outputs, "out", nil, "outputs to plug (all if empty)")
}

func addAxisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&xName, "x", "lorenz_x", "horizontal output")
	cmd.Flags().StringVar(&yName, "y", "lorenz_y", "vertical output")
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&sysParams, "param", nil, "parameter value, name=value (repeatable)")
	cmd.Flags().Float64Var(&sysRate, "rate", 44100, "sample rate, sets dt")
	cmd.Flags().Float64Var(&sysTime, "time", 2, "duration in seconds")
}

func addMonitorFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fps, "fps", 30, "scope frame rate")
	cmd.Flags().StringVar(&theme, "theme", "phosphor", "scope theme")
}
