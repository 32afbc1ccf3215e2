package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/experiment"
	"github.com/san-kum/latticesim/internal/lattice"
	"github.com/san-kum/latticesim/internal/metrics"
	"github.com/san-kum/latticesim/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	maxStepsPerTick = 1024
)

type TickMsg time.Time

type viewMode int

const (
	viewHeatmap viewMode = iota
	viewMesh
	viewSurface
	numViews
)

func (v viewMode) String() string {
	switch v {
	case viewMesh:
		return "mesh"
	case viewSurface:
		return "surface"
	default:
		return "heatmap"
	}
}

// Model drives a lattice from bubbletea ticks and renders it.
type Model struct {
	cfg           *config.Config
	lat           *experiment.Lattice
	frame         *lattice.Frame
	t, dt         float64
	steps         int
	stepsPerTick  int
	running       bool
	view          viewMode
	theme         int
	canvas        *Canvas
	camera        *Camera
	initialEnergy float64
	energyHistory []float64
	probeHistory  []float64
	recorder      *Recorder
	recording     bool
	gifPath       string
	showHelp      bool
	err           error
}

func NewModel(cfg *config.Config) (Model, error) {
	lat, err := experiment.Build(cfg)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:           cfg,
		lat:           lat,
		frame:         lattice.NewFrame(cfg.Rows, cfg.Cols),
		dt:            cfg.Dt,
		stepsPerTick:  max(1, cfg.SampleEvery),
		running:       true,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		energyHistory: make([]float64, 0, historyCapacity),
		probeHistory:  make([]float64, 0, historyCapacity),
		recorder:      &Recorder{},
		gifPath:       "lattice.gif",
	}
	m.sample()
	m.initialEnergy = m.energyHistory[0]
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.dt *= 1.25
		case "-", "_":
			m.dt /= 1.25
		case "]":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "[":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "v":
			m.view = (m.view + 1) % numViews
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case ">", ".":
			m.camera.ZoomIn()
		case "<", ",":
			m.camera.ZoomOut()
		case "g":
			if m.recording {
				if err := m.recorder.Save(m.gifPath); err != nil {
					m.err = err
				}
			}
			m.recording = !m.recording
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		if m.recording {
			m.drawMesh()
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

// step advances the lattice stepsPerTick times and records one sample.
func (m *Model) step() {
	for n := 0; n < m.stepsPerTick; n++ {
		m.lat.Step(m.dt)
		m.t += m.dt
		m.steps++
	}
	m.sample()
	if !sim.Valid(m.frame) {
		m.running = false
		m.err = sim.StepError{Time: m.t, Step: m.steps, Message: "invalid state (NaN/Inf)"}
	}
}

func (m *Model) sample() {
	m.lat.Frame(m.frame)
	m.energyHistory = appendCapped(m.energyHistory, metrics.TotalEnergy(m.frame))
	p := m.cfg.Probe
	m.probeHistory = appendCapped(m.probeHistory, m.frame.Pos[lattice.Axes*(p.Row*m.frame.Cols+p.Col)+p.Axis])
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset rebuilds the lattice from its configuration and clears history.
func (m *Model) reset() {
	lat, err := experiment.Build(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.lat.Close()
	m.lat = lat
	m.t, m.steps, m.dt = 0, 0, m.cfg.Dt
	m.err = nil
	m.energyHistory = m.energyHistory[:0]
	m.probeHistory = m.probeHistory[:0]
	m.sample()
	m.initialEnergy = m.energyHistory[0]
}

// Close releases the lattice backend.
func (m Model) Close() {
	if m.lat != nil {
		m.lat.Close()
	}
}

func (m Model) Err() error { return m.err }

func (m *Model) drawMesh() {
	m.canvas.Clear()
	_, peak := Magnitudes(m.frame)
	gain := 0.0
	if peak > 0 {
		gain = 0.4 / peak
	}
	DrawLattice(m.canvas, m.frame, gain)
}

func (m *Model) drawSurface() {
	m.canvas.Clear()
	_, peak := Magnitudes(m.frame)
	gain := 0.0
	if peak > 0 {
		gain = 0.5 / peak
	}
	Render3D(m.canvas, SurfaceWireframe(m.frame, m.cfg.Probe.Axis, gain), m.camera)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusRecord.Render("HALTED")
	case m.recording:
		return StatusRecord.Render("● REC")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	var left string
	switch m.view {
	case viewMesh:
		m.drawMesh()
		left = m.canvas.String()
	case viewSurface:
		m.drawSurface()
		left = m.canvas.String()
	default:
		left = Heatmap(m.frame, Themes[m.theme], width, height)
	}
	canvasView := canvasStyle.Render(left)

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("LATTICE %dx%d", m.cfg.Rows, m.cfg.Cols)) + "\n")
	s.WriteString(m.status() + "\n\n")
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Probe") + SparklineChart(m.probeHistory, 30) + "\n\n")

	energy := m.energyHistory[len(m.energyHistory)-1]
	drift := 0.0
	if m.initialEnergy != 0 {
		drift = (energy - m.initialEnergy) / m.initialEnergy
	}
	_, peak := Magnitudes(m.frame)
	rows := [][2]string{
		{"Time", fmt.Sprintf("%.2f", m.t)},
		{"Steps", fmt.Sprintf("%d (%d/tick)", m.steps, m.stepsPerTick)},
		{"dt", fmt.Sprintf("%.4g", m.dt)},
		{"Energy", fmt.Sprintf("%.6g", energy)},
		{"Drift", fmt.Sprintf("%+.3e", drift)},
		{"Peak |u|", fmt.Sprintf("%.4g", peak)},
		{"Backend", m.lat.Backend().Name()},
		{"Layout", m.cfg.Strategy + "/" + m.lat.Order().String() + "/" + m.cfg.Precision},
		{"View", m.view.String()},
		{"Theme", Themes[m.theme].Name},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + activeParamStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:dt  [ ]:Speed V:View\nT:Theme G:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset lattice            ║
║  Q        - Quit                     ║
║  + / -    - Scale dt by 1.25         ║
║  ] / [    - Double/halve steps/tick  ║
║  V        - Heatmap/mesh/surface     ║
║  X Y Z    - Rotate surface camera    ║
║  > / <    - Zoom surface in/out      ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run opens the live view for cfg and blocks until the user quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	m.Close()
	if m.recording {
		if serr := m.recorder.Save(m.gifPath); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}
