package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/rack"
)

const (
	canvasWidth     = 56
	canvasHeight    = 20
	trailCapacity   = 600
	pointsPerTick   = 32
	historyCapacity = 24
	defaultFPS      = 30
	voltageRail     = 10.0
)

type TickMsg time.Time

type MonitorConfig struct {
	SampleRate float64
	FPS        int
	// Owned means the monitor ticks the module itself. Otherwise something
	// else, the audio callback, drives it and the monitor only reads ports.
	Owned bool
	Theme string
}

// Monitor is a read-only scope: it draws a phase portrait of one pair of
// outputs and meters for every connected output. It never changes a knob,
// CV or cable.
type Monitor struct {
	module rack.Module
	cfg    MonitorConfig
	args   rack.ProcessArgs
	frame  int64

	ports   []*rack.Port
	pairs   [][2]*rack.Port
	pair    int
	history [][]float64

	canvas  *Canvas
	camera  *Camera
	trail   []analysis.Point
	trail3D []Vec3
	show3D  bool

	running bool
	theme   int
	styles  styles
}

func NewMonitor(m rack.Module, cfg MonitorConfig) Monitor {
	if cfg.FPS <= 0 {
		cfg.FPS = defaultFPS
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}

	ports := rack.ConnectedOutputs(m)
	theme := 0
	for i, t := range Themes {
		if t.Name == cfg.Theme {
			theme = i
		}
	}

	return Monitor{
		module:  m,
		cfg:     cfg,
		args:    rack.NewProcessArgs(cfg.SampleRate, 0),
		ports:   ports,
		pairs:   pairPorts(ports),
		history: make([][]float64, len(ports)),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
		trail:   make([]analysis.Point, 0, trailCapacity),
		trail3D: make([]Vec3, 0, trailCapacity),
		running: true,
		theme:   theme,
		styles:  Themes[theme].styles(),
	}
}

// pairPorts groups outputs two by two; an odd one out is paired with the
// output before it.
func pairPorts(ports []*rack.Port) [][2]*rack.Port {
	var pairs [][2]*rack.Port
	for i := 0; i+1 < len(ports); i += 2 {
		pairs = append(pairs, [2]*rack.Port{ports[i], ports[i+1]})
	}
	if n := len(ports); n%2 == 1 {
		prev := ports[max(n-2, 0)]
		pairs = append(pairs, [2]*rack.Port{prev, ports[n-1]})
	}
	return pairs
}

func (m Monitor) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Monitor) Init() tea.Cmd {
	return m.tick()
}

func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "tab":
			if len(m.pairs) > 0 {
				m.pair = (m.pair + 1) % len(m.pairs)
				m.trail = m.trail[:0]
				m.trail3D = m.trail3D[:0]
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = Themes[m.theme].styles()
		case "v":
			m.show3D = !m.show3D && m.system() != nil
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// FramesPerTick is how many samples the monitor renders per screen update
// when it owns the module.
func (m Monitor) FramesPerTick() int {
	return max(1, int(m.cfg.SampleRate)/m.cfg.FPS)
}

func (m *Monitor) step() {
	if !m.cfg.Owned {
		m.sample()
		m.record()
		return
	}

	n := m.FramesPerTick()
	stride := max(1, n/pointsPerTick)
	for i := 0; i < n; i++ {
		m.args.Frame = m.frame
		m.module.Process(m.args)
		m.frame++
		if i%stride == 0 {
			m.sample()
		}
	}
	m.record()
}

// sample appends the current pair to the trails.
func (m *Monitor) sample() {
	if len(m.pairs) == 0 {
		return
	}
	p := m.pairs[m.pair]
	m.trail = appendCapped(m.trail, analysis.Point{X: p[0].Voltage(), Y: p[1].Voltage()})

	if sys := m.system(); sys != nil {
		m.trail3D = appendCapped(m.trail3D, project3D(sys))
	}
}

// record pushes every meter's voltage into its history.
func (m *Monitor) record() {
	for i, p := range m.ports {
		h := append(m.history[i], p.Voltage())
		if len(h) > historyCapacity {
			h = h[len(h)-historyCapacity:]
		}
		m.history[i] = h
	}
}

func appendCapped[T any](s []T, v T) []T {
	if len(s) >= trailCapacity {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

// system returns the attractor behind the selected pair, only when the
// monitor owns the module, since its state is not safe to read while
// another goroutine ticks it.
func (m *Monitor) system() *dynamo.System {
	sa, ok := m.module.(*rack.StrangeAttractors)
	if !ok || !m.cfg.Owned || len(m.pairs) == 0 {
		return nil
	}
	name := m.pairs[m.pair][0].Name
	switch {
	case strings.HasPrefix(name, dynamo.KindLorenz.String()):
		return sa.Lorenz()
	case strings.HasPrefix(name, dynamo.KindRossler.String()):
		return sa.Rossler()
	}
	return nil
}

func project3D(sys *dynamo.System) Vec3 {
	s := sys.State
	if sys.Kind() == dynamo.KindLorenz {
		return Vec3{s.X * 0.04, (s.Z - 25) * 0.04, s.Y * 0.04}
	}
	return Vec3{s.X * 0.08, s.Z * 0.04, s.Y * 0.08}
}

// Time is the rendered time in seconds when the monitor owns the module.
func (m Monitor) Time() float64 {
	return float64(m.frame) * m.args.SampleTime
}

func (m Monitor) draw() {
	m.canvas.Clear()
	if m.show3D {
		m.camera.RotateY(0.01)
		Render3D(m.canvas, m.trail3D, m.camera)
		return
	}
	portrait := analysis.PhasePortrait2D{Points: m.trail}
	minX, maxX, minY, maxY := portrait.Bounds()
	m.canvas.PlotTrail(m.trail, minX, maxX, minY, maxY)
}

func (m Monitor) View() string {
	st := m.styles
	m.draw()

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.module.Name())) + "\n")
	if m.running {
		s.WriteString(st.status.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if m.cfg.Owned {
		s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2fs", m.Time())) + "\n")
	}
	s.WriteString(st.label.Render("Rate") + st.value.Render(fmt.Sprintf("%.0f Hz", m.cfg.SampleRate)) + "\n")

	if len(m.pairs) > 0 {
		p := m.pairs[m.pair]
		view := "phase"
		if m.show3D {
			view = "3d"
		}
		s.WriteString(st.label.Render("Scope") + st.value.Render(fmt.Sprintf("%s / %s (%s)", p[0].Name, p[1].Name, view)) + "\n")
	}

	s.WriteString("\nOUTPUTS\n")
	if len(m.ports) == 0 {
		s.WriteString(st.label.Render("  (none connected)") + "\n")
	}
	for i, p := range m.ports {
		s.WriteString(st.label.Render(p.Name) + " " + VoltageBar(p.Voltage(), voltageRail, 11) +
			st.value.Render(fmt.Sprintf(" %+6.3f V", p.Voltage())) + "\n")
		s.WriteString(strings.Repeat(" ", 13) + SparklineChart(m.history[i], historyCapacity, -voltageRail/2, voltageRail/2) + "\n")
	}

	s.WriteString(st.help.Render("SPACE pause  TAB pair  V 3d  T theme  Q quit"))

	canvasView := st.canvas.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

// Run starts the monitor full-screen and blocks until it quits.
func Run(m rack.Module, cfg MonitorConfig) error {
	_, err := tea.NewProgram(NewMonitor(m, cfg), tea.WithAltScreen()).Run()
	return err
}
