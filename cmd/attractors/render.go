package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/san-kum/attractors/internal/automation"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/engine"
	"github.com/san-kum/attractors/internal/metrics"
	"github.com/san-kum/attractors/internal/rack"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/spf13/cobra"
)

func renderPatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadPatch(cmd, args)
	if err != nil {
		return err
	}
	m, err := cfg.Build()
	if err != nil {
		return err
	}
	return renderAndSave(cmd.Context(), cfg, engine.New(m))
}

func automate(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	cfg, err := loadPatch(cmd, nil)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("module") {
		cfg.Module = sc.Module
	}
	if sc.Duration > 0 && !cmd.Flags().Changed("time") {
		cfg.Duration = sc.Duration
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := cfg.Build()
	if err != nil {
		return err
	}
	if err := sc.Validate(m); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}

	e := engine.New(m)
	e.SetAutomation(sc)
	if err := renderAndSave(cmd.Context(), cfg, e); err != nil {
		return err
	}
	if n := sc.Pending(); n > 0 {
		fmt.Printf("\n%d steps never fired (scenario runs past the render)\n", n)
	}
	return nil
}

// renderAndSave runs e over the patch with the default metrics and stores
// the signals unless --no-save was given.
func renderAndSave(ctx context.Context, cfg *config.Config, e *engine.Engine) error {
	outs := rack.PortNames(rack.ConnectedOutputs(e.Module()))
	for _, mt := range metrics.Defaults(outs) {
		e.AddMetric(mt)
	}

	fmt.Printf("rendering %s (%.2fs at %.0f hz)...\n", cfg.Module, cfg.Duration, cfg.SampleRate)
	start := time.Now()

	result, err := e.Run(ctx, cfg.Engine())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, rerr := range result.Errors {
		fmt.Printf("warning: %v\n", rerr)
	}

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Module:     cfg.Module,
			Seed:       cfg.Seed,
			SampleRate: cfg.SampleRate,
			Duration:   cfg.Duration,
			Decimate:   cfg.Decimate,
			Params:     cfg.Params,
			CV:         cfg.CV,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("frames: %d\n", result.StepsTaken)
	printMetrics(result.Metrics)
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadPatch(cmd, nil)
	if err != nil {
		return err
	}

	sw := &automation.ParameterSweep{
		Module:    cfg.Module,
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepCount,
		Config:    cfg.Engine(),
		Build:     cfg.Build,
	}

	fmt.Printf("sweeping %s.%s from %g to %g\n\n", cfg.Module, args[0], sweepMin, sweepMax)
	results, err := automation.RunSweep(cmd.Context(), sw)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "VALUE")
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.4g", r.ParamValue)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	name := config.DefaultModule
	if len(args) > 0 {
		name = args[0]
	}
	if _, err := rack.New(name, rack.Options{}); err != nil {
		return err
	}

	fmt.Printf("benchmarking %s at %.0f hz, %d in parallel\n\n", name, sampleRate, parallel)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tFRAMES\tTIME\tFRAMES/SEC\tREALTIME")

	for _, dur := range []float64{1.0, 5.0, 10.0} {
		cfg := engine.DefaultConfig()
		cfg.SampleRate = sampleRate
		cfg.Duration = dur
		// keep only the first frame so allocation stays out of the timing
		cfg.Decimate = int(cfg.Frames())

		en := &engine.Ensemble{
			Runs: max(parallel, 1),
			Build: func(int) (*engine.Engine, error) {
				m, err := rack.New(name, rack.Options{})
				if err != nil {
					return nil, err
				}
				if err := rack.ConnectOutputs(m, rack.PortNames(m.Outputs())); err != nil {
					return nil, err
				}
				return engine.New(m), nil
			},
		}

		start := time.Now()
		results, err := en.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		var frames int64
		for _, r := range results {
			frames += r.StepsTaken
		}
		perSec := float64(frames) / elapsed.Seconds()

		fmt.Fprintf(w, "%.1fs\t%d\t%v\t%.0f\t%.1fx\n",
			dur, frames, elapsed, perSec, perSec/sampleRate)
	}

	return w.Flush()
}
