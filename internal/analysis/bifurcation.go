package analysis

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// BifurcationPoint holds the distinct local maxima of one axis for one
// parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// BifurcationSweep configures a BifurcationDiagram.
type BifurcationSweep struct {
	Param      string
	Min, Max   float64
	Steps      int
	Axis       int
	Dt         float64
	Transient  float64
	Record     float64
	MaxWorkers int
}

// BifurcationDiagram sweeps one parameter of base and records the local
// maxima of an axis after a transient. Every parameter value runs on its
// own clone of base, so the other parameters and the start state are
// base's; results are in sweep order. base is not modified.
func BifurcationDiagram(ctx context.Context, base *dynamo.System, sw BifurcationSweep) ([]BifurcationPoint, error) {
	def := base.Definition()
	idx, err := def.ParamIndex(sw.Param)
	if err != nil {
		return nil, err
	}
	spec := def.Params[idx]
	if !spec.Contains(sw.Min) || !spec.Contains(sw.Max) {
		return nil, fmt.Errorf("%w: %s range is [%g, %g]", dynamo.ErrParameterBounds, sw.Param, spec.Min, spec.Max)
	}
	if sw.Dt <= 0 {
		return nil, fmt.Errorf("bifurcation: dt must be positive, got %g", sw.Dt)
	}

	steps := sw.Steps
	if steps <= 1 {
		steps = 2
	}
	paramStep := (sw.Max - sw.Min) / float64(steps-1)

	results := make([]BifurcationPoint, steps)

	g, ctx := errgroup.WithContext(ctx)
	workers := sw.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i := 0; i < steps; i++ {
		param := sw.Min + float64(i)*paramStep
		g.Go(func() error {
			sys := base.Clone()
			sys.SetParam(idx, param)

			values, err := localMaxima(ctx, sys, sw)
			if err != nil {
				return err
			}
			results[i] = BifurcationPoint{Param: param, Values: values}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func localMaxima(ctx context.Context, sys *dynamo.System, sw BifurcationSweep) ([]float64, error) {
	transient := int(math.Round(sw.Transient / sw.Dt))
	record := int(math.Round(sw.Record / sw.Dt))

	for i := 0; i < transient; i++ {
		if i%4096 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		sys.Advance(sw.Dt)
	}

	values := make([]float64, 0, 64)
	seen := make(map[int]bool)
	prev2, prev1 := math.NaN(), sys.State.Axis(sw.Axis)

	for i := 0; i < record; i++ {
		if i%4096 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		sys.Advance(sw.Dt)
		cur := sys.State.Axis(sw.Axis)

		if prev1 > prev2 && prev1 >= cur {
			// quantize so a periodic orbit reports each peak once
			key := int(math.Round(prev1 * 1000))
			if !seen[key] {
				seen[key] = true
				values = append(values, prev1)
			}
		}
		prev2, prev1 = prev1, cur
	}

	if !sys.State.IsValid() {
		return nil, &dynamo.SimulationError{Step: transient + record, State: sys.State, Wrapped: dynamo.ErrInvalidState}
	}
	return values, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := newCanvas(width, height)
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return canvasString(canvas)
}

func newCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func canvasString(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
