package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/rack"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	if !c.IsSet(0, 0) || !c.IsSet(3, 3) || c.IsSet(1, 0) {
		t.Error("wrong dots lit")
	}
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("grid = %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	c.Clear()
	if c.String() != "⠀⠀\n" {
		t.Errorf("cleared = %q", c.String())
	}
}

func TestPlotTrailCorners(t *testing.T) {
	c := NewCanvas(10, 5)
	c.PlotTrail([]analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0, 1, 0, 1)
	w, h := c.Dots()
	if !c.IsSet(0, h-1) || !c.IsSet(w-1, 0) {
		t.Error("trail does not reach both corners")
	}
}

func TestRender3DDrawsSomething(t *testing.T) {
	c := NewCanvas(20, 10)
	Render3D(c, []Vec3{{-0.5, 0, 0}, {0.5, 0.5, 0}}, NewCamera())
	if c.String() == NewCanvas(20, 10).String() {
		t.Error("nothing drawn")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{-1, 0, 1}, 8, -1, 1); got != "▁▄█" {
		t.Errorf("sparkline = %q", got)
	}
	if got := Sparkline([]float64{1, 2, 3, 4}, 2, 0, 4); got != "▆█" {
		t.Errorf("tail = %q", got)
	}
	if got := Sparkline(nil, 3, 0, 1); got != "───" {
		t.Errorf("empty = %q", got)
	}
}

func TestVoltageBar(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "──█──"},
		{10, "──┼─█"},
		{-50, "█─┼──"},
	}
	for _, tt := range tests {
		if got := VoltageBar(tt.v, 10, 5); got != tt.want {
			t.Errorf("VoltageBar(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("amber").Name != "amber" {
		t.Error("amber not found")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length")
	}
}

func newOwnedMonitor(t *testing.T) (Monitor, *rack.StrangeAttractors) {
	t.Helper()
	sa := rack.NewStrangeAttractors()
	if err := rack.ConnectOutputs(sa, []string{"lorenz_x", "lorenz_y", "rossler_x", "rossler_y"}); err != nil {
		t.Fatal(err)
	}
	return NewMonitor(sa, MonitorConfig{SampleRate: 48000, FPS: 480, Owned: true}), sa
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMonitorTicksOwnedModule(t *testing.T) {
	m, sa := newOwnedMonitor(t)
	if m.FramesPerTick() != 100 {
		t.Fatalf("frames per tick = %d", m.FramesPerTick())
	}

	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick did not schedule the next one")
	}
	m = next.(Monitor)

	ref := physics.NewLorenz()
	for i := 0; i < 100; i++ {
		ref.Advance(1.0 / 48000)
	}
	if !sa.Lorenz().State.IsValid() || !sa.Rossler().State.IsValid() {
		t.Fatalf("non-finite state: lorenz %+v rossler %+v", sa.Lorenz().State, sa.Rossler().State)
	}
	if sa.Lorenz().State != ref.State {
		t.Errorf("lorenz = %+v, want %+v", sa.Lorenz().State, ref.State)
	}
	if len(m.trail) == 0 || len(m.trail3D) == 0 || len(m.history[0]) != 1 {
		t.Errorf("trail=%d trail3D=%d history=%d", len(m.trail), len(m.trail3D), len(m.history[0]))
	}
}

func TestMonitorKeys(t *testing.T) {
	m, sa := newOwnedMonitor(t)

	next, _ := m.Update(key(" "))
	m = next.(Monitor)
	if m.running {
		t.Fatal("space did not pause")
	}
	before := sa.Lorenz().State
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Monitor)
	if sa.Lorenz().State != before {
		t.Error("paused monitor advanced the module")
	}

	next, _ = m.Update(key("tab"))
	m = next.(Monitor)
	if m.pair != 1 || m.system() != sa.Rossler() {
		t.Errorf("pair = %d", m.pair)
	}

	next, _ = m.Update(key("v"))
	m = next.(Monitor)
	if !m.show3D {
		t.Error("v did not enable the 3d view")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestMonitorReadOnlyWhenNotOwned(t *testing.T) {
	sa := rack.NewStrangeAttractors()
	_ = rack.ConnectOutputs(sa, []string{"lorenz_x", "lorenz_y"})
	m := NewMonitor(sa, MonitorConfig{SampleRate: 44100})

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Monitor)
	if sa.Lorenz().State != physics.Lorenz.Seed {
		t.Error("monitor ticked a module it does not own")
	}
	next, _ = m.Update(key("v"))
	if next.(Monitor).show3D {
		t.Error("3d view enabled without owning the module")
	}
	if !strings.Contains(m.View(), "lorenz_x") {
		t.Error("view does not list outputs")
	}
}

func TestPairPorts(t *testing.T) {
	n := rack.NewNoise(1)
	ports := n.Outputs()[:3]
	pairs := pairPorts(ports)
	if len(pairs) != 2 || pairs[1][0] != ports[1] || pairs[1][1] != ports[2] {
		t.Errorf("pairs = %v", pairs)
	}
	if len(pairPorts(nil)) != 0 {
		t.Error("pairs of nothing")
	}
}
