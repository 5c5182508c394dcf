package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/engine"
)

type Point struct {
	X, Y float64
}

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []Point
}

// Bounds returns the extent of the portrait's points.
func (p *PhasePortrait2D) Bounds() (minX, maxX, minY, maxY float64) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, maxX, minY, maxY
}

var axisNames = [3]string{"x", "y", "z"}

// GeneratePhasePortrait advances a copy of sys and records two of its
// axes (0 x, 1 y, 2 z) after every step.
func GeneratePhasePortrait(sys *dynamo.System, xAxis, yAxis int, dt, duration float64) (*PhasePortrait2D, error) {
	if xAxis < 0 || xAxis > 2 || yAxis < 0 || yAxis > 2 {
		return nil, fmt.Errorf("phase: axes must be 0, 1 or 2, got %d and %d", xAxis, yAxis)
	}

	steps := int(math.Round(duration / dt))
	portrait := &PhasePortrait2D{
		XLabel: sys.Kind().String() + "." + axisNames[xAxis],
		YLabel: sys.Kind().String() + "." + axisNames[yAxis],
		Points: make([]Point, 0, steps),
	}

	s := sys.Clone()
	for i := 0; i < steps; i++ {
		s.Advance(dt)
		portrait.Points = append(portrait.Points, Point{X: s.State.Axis(xAxis), Y: s.State.Axis(yAxis)})
	}

	return portrait, nil
}

// PortraitFromSignals plots one recorded output against another.
func PortraitFromSignals(result *engine.Result, xName, yName string) (*PhasePortrait2D, error) {
	xs, err := result.Channel(xName)
	if err != nil {
		return nil, err
	}
	ys, err := result.Channel(yName)
	if err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{
		XLabel: xName,
		YLabel: yName,
		Points: make([]Point, len(xs)),
	}
	for i := range xs {
		portrait.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return portrait, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX, minY, maxY := portrait.Bounds()

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := newCanvas(width, height)

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	return canvasString(canvas)
}

// PoincareSection records points when a trajectory crosses a plane
type PoincareSection struct {
	Points []Point
}

// GeneratePoincareSection records two axes of a copy of sys each time
// crossAxis rises through threshold, interpolated to the crossing.
func GeneratePoincareSection(
	sys *dynamo.System,
	crossAxis int,
	threshold float64,
	recordX, recordY int,
	dt, duration float64,
) *PoincareSection {
	section := &PoincareSection{
		Points: make([]Point, 0),
	}

	s := sys.Clone()
	steps := int(math.Round(duration / dt))
	prev := s.State

	for i := 0; i < steps; i++ {
		s.Advance(dt)
		cur := s.State

		pv, cv := prev.Axis(crossAxis), cur.Axis(crossAxis)
		if pv < threshold && cv >= threshold {
			frac := (threshold - pv) / (cv - pv)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			section.Points = append(section.Points, Point{
				X: lerp(prev.Axis(recordX), cur.Axis(recordX), frac),
				Y: lerp(prev.Axis(recordY), cur.Axis(recordY), frac),
			})
		}

		prev = cur
	}

	return section
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}

	portrait := &PhasePortrait2D{Points: section.Points}
	return PhasePortraitToASCII(portrait, width, height)
}
