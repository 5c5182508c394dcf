package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/engine"
	"github.com/san-kum/attractors/internal/export"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/san-kum/attractors/internal/viz"
	"github.com/spf13/cobra"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#33ff66"))

func loadRun(args []string) (*storage.RunMetadata, *engine.Result, error) {
	st, runID, err := openRun(args)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadSignals(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Frames) == 0 || len(result.Outputs) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, result, nil
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
	fmt.Fprintln(w, "ID\tMODULE\tTIME\tDURATION\tRATE\tFRAMES\tOUTPUTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.0f\t%d\t%s\n",
			run.ID,
			run.Module,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.SampleRate,
			run.Frames,
			strings.Join(run.Outputs, ","),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	n := min(max(samples, 1), len(result.Frames))
	fmt.Println(headingStyle.Render("run: " + meta.ID))
	fmt.Printf("module: %s\n", meta.Module)
	fmt.Printf("samples: %d of %d\n\n", n, len(result.Frames))

	for _, name := range result.Outputs {
		data, err := result.Channel(name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data[:n],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" (V)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	portrait, err := analysis.PortraitFromSignals(result, xName, yName)
	if err != nil {
		return err
	}

	fmt.Println(headingStyle.Render("phase portrait: " + meta.ID))
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xName, yName)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	name := channel
	if name == "" {
		name = result.Outputs[0]
	}
	data, err := result.Channel(name)
	if err != nil {
		return err
	}

	rate := meta.SampleRate / float64(max(meta.Decimate, 1))
	spec, err := analysis.WelchSpectrum(data, rate, min(nfft, len(data)))
	if err != nil {
		return err
	}

	fmt.Println(headingStyle.Render("frequency analysis: " + meta.ID))
	fmt.Printf("channel: %s\n\n", name)

	// the audible low end is where these oscillators live
	plotData := spec.Power[:max(len(spec.Power)/4, 1)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum of %s, 0-%.0f hz", name, rate/8)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := spec.Peak()
	fmt.Printf("dominant frequency: %.2f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f ms\n", 1000/freq)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args)
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}
	if jsonOut == "" {
		return storage.WriteJSON(os.Stdout, meta, result)
	}
	if err := storage.ExportJSON(jsonOut, meta, result); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", jsonOut)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args)
	if err != nil {
		return err
	}

	portrait, err := analysis.PortraitFromSignals(result, xName, yName)
	if err != nil {
		return err
	}

	var svg string
	if braille {
		canvas := viz.NewCanvas(80, 40)
		minX, maxX, minY, maxY := portrait.Bounds()
		canvas.PlotTrail(portrait.Points, minX, maxX, minY, maxY)
		dotsW, _ := canvas.Dots()
		svg = export.CanvasToSVG(canvas, float64(svgWidth)/float64(dotsW))
	} else {
		svg = export.TrajectoryToSVG(portrait, svgWidth, svgWidth, "#33ff66")
	}

	if svgOut == "" {
		_, err := fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	module := config.DefaultModule
	if len(args) > 0 {
		module = args[0]
	}

	presets := config.ListPresets(module)
	if len(presets) == 0 {
		fmt.Printf("no presets for %s\n", module)
		return nil
	}

	fmt.Println(headingStyle.Render("presets for " + module + ":"))
	for _, name := range presets {
		p := config.GetPreset(module, name)
		var knobs []string
		for _, k := range sortedKeys(p.Params) {
			knobs = append(knobs, fmt.Sprintf("%s=%g", k, p.Params[k]))
		}
		fmt.Printf("  %-12s %s\n", name, strings.Join(knobs, " "))
	}
	return nil
}
