package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/spf13/cobra"
)

// newSystem builds a bare attractor with --param values clamped to their
// ranges, the same way the module clamps knob plus CV.
func newSystem(name string) (*dynamo.System, error) {
	sys, err := physics.NewSystem(name)
	if err != nil {
		return nil, err
	}
	params, err := parseAssignments(sysParams)
	if err != nil {
		return nil, err
	}
	def := sys.Definition()
	for k, v := range params {
		i, err := def.ParamIndex(k)
		if err != nil {
			return nil, err
		}
		sys.SetParam(i, def.Params[i].Clamp(v))
	}
	return sys, nil
}

func parseAxis(s string) (int, error) {
	switch strings.ToLower(s) {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want x, y or z)", s)
}

func describe(sys *dynamo.System) string {
	var parts []string
	for i, p := range sys.Definition().Params {
		parts = append(parts, fmt.Sprintf("%s=%.4g", p.Name, sys.Param(i)))
	}
	return sys.Kind().String() + " " + strings.Join(parts, " ")
}

func lyapunov(cmd *cobra.Command, args []string) error {
	sys, err := newSystem(args[0])
	if err != nil {
		return err
	}

	dt := 1 / sysRate
	fmt.Printf("%s\n", describe(sys))
	fmt.Printf("dt=1/%.0f s, duration=%.1fs\n\n", sysRate, sysTime)

	start := time.Now()
	lambda := analysis.LyapunovExponent(sys, dt, sysTime, perturbation)
	elapsed := time.Since(start)

	fmt.Printf("largest lyapunov exponent: %.3f /s\n", lambda)
	switch {
	case lambda > 1:
		fmt.Println("chaotic")
	case lambda < -1:
		fmt.Println("converging to a fixed point or cycle")
	default:
		fmt.Println("marginal")
	}
	fmt.Printf("computed in %v\n", elapsed)
	return nil
}

func bifurcation(cmd *cobra.Command, args []string) error {
	sys, err := newSystem(args[0])
	if err != nil {
		return err
	}
	def := sys.Definition()
	idx, err := def.ParamIndex(args[1])
	if err != nil {
		return err
	}
	ax, err := parseAxis(axis)
	if err != nil {
		return err
	}

	lo, hi := bifMin, bifMax
	if !cmd.Flags().Changed("min") {
		lo = def.Params[idx].Min
	}
	if !cmd.Flags().Changed("max") {
		hi = def.Params[idx].Max
	}

	sw := analysis.BifurcationSweep{
		Param:     args[1],
		Min:       lo,
		Max:       hi,
		Steps:     bifSteps,
		Axis:      ax,
		Dt:        1 / sysRate,
		Transient: transient,
		Record:    record,
	}

	fmt.Printf("%s\n", describe(sys))
	fmt.Printf("bifurcation over %s in [%g, %g], maxima of %s\n\n", args[1], lo, hi, axis)
	points, err := analysis.BifurcationDiagram(cmd.Context(), sys, sw)
	if err != nil {
		return err
	}
	fmt.Println(analysis.BifurcationToASCII(points, 70, 20))
	return nil
}

func poincare(cmd *cobra.Command, args []string) error {
	sys, err := newSystem(args[0])
	if err != nil {
		return err
	}
	cross, err := parseAxis(axis)
	if err != nil {
		return err
	}
	rx, err := parseAxis(recX)
	if err != nil {
		return err
	}
	ry, err := parseAxis(recY)
	if err != nil {
		return err
	}

	section := analysis.GeneratePoincareSection(sys, cross, threshold, rx, ry, 1/sysRate, sysTime)

	fmt.Printf("%s\n", describe(sys))
	fmt.Printf("section %s=%g, %d crossings\n\n", axis, threshold, len(section.Points))
	if len(section.Points) == 0 {
		fmt.Println("no crossings; move the plane with --threshold")
		return nil
	}
	fmt.Println(analysis.PoincareSectionToASCII(section, 70, 20))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	sys, err := newSystem(args[0])
	if err != nil {
		return err
	}
	other, err := integrators.ByName(integrator)
	if err != nil {
		return err
	}

	dt := 1 / sysRate
	steps := int(sysTime * sysRate)

	fmt.Printf("comparing euler with %s for %s (dt=1/%.0f, duration=%.1fs)\n\n", other.Name(), describe(sys), sysRate, sysTime)

	start := time.Now()
	rep := integrators.Divergence(sys, integrators.NewEuler(), other, dt, steps, tolerance)
	elapsed := time.Since(start)

	fmt.Printf("%-14s  %s\n", "max separation", fmt.Sprintf("%.6g", rep.MaxSep))
	if rep.DivergedAt < 0 {
		fmt.Printf("%-14s  never (tol %g)\n", "diverged at", tolerance)
	} else {
		fmt.Printf("%-14s  step %d (%.4fs audio, tol %g)\n", "diverged at", rep.DivergedAt, float64(rep.DivergedAt)*dt, tolerance)
	}
	fmt.Printf("%-14s  (%.4f, %.4f, %.4f)\n", "final euler", rep.FinalA.X, rep.FinalA.Y, rep.FinalA.Z)
	fmt.Printf("%-14s  (%.4f, %.4f, %.4f)\n", "final "+other.Name(), rep.FinalB.X, rep.FinalB.Y, rep.FinalB.Z)
	fmt.Printf("%-14s  %.2f ms\n", "time", float64(elapsed.Microseconds())/1000)

	return nil
}
