package export

import (
	"strings"
	"testing"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/viz"
)

func TestTrajectoryToSVG(t *testing.T) {
	p := &analysis.PhasePortrait2D{
		XLabel: "lorenz_x",
		YLabel: "lorenz_y",
		Points: []analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}},
	}
	svg := TrajectoryToSVG(p, 200, 100, "#00ffff")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments:\n%s", svg)
	}
	// first point sits 10% in from the left and bottom
	if !strings.Contains(svg, `d="M16.7,91.7`) {
		t.Errorf("unexpected start point:\n%s", svg)
	}
	if !strings.Contains(svg, "lorenz_x / lorenz_y") {
		t.Error("missing axis caption")
	}

	if TrajectoryToSVG(&analysis.PhasePortrait2D{Points: p.Points[:1]}, 10, 10, "red") != "" {
		t.Error("single point should give empty output")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2)

	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots:\n%s", svg)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Errorf("unexpected size:\n%s", svg)
	}
	if !strings.Contains(svg, `cx="7.0" cy="7.0"`) {
		t.Errorf("missing dot at (3,3):\n%s", svg)
	}
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas")
	}
}
