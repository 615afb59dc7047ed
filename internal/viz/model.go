package viz

import (
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geometry"
	"github.com/san-kum/orrery/internal/physics"
	"github.com/san-kum/orrery/internal/sim"
)

const (
	defaultWidth    = 72
	defaultHeight   = 24
	statsWidth      = 44
	historyCapacity = 600
	maxStepsFrame   = 1024
	maxListed       = 10
)

type TickMsg time.Time

type Options struct {
	Name          string
	StepsPerFrame int
	FPS           int
	TrailLength   int
	Theme         string
	GIFPath       string
}

func (o Options) withDefaults() Options {
	if o.StepsPerFrame < 1 {
		o.StepsPerFrame = 1
	}
	if o.FPS < 1 {
		o.FPS = 30
	}
	if o.TrailLength < 0 {
		o.TrailLength = 0
	} else if o.TrailLength == 0 {
		o.TrailLength = 200
	}
	if o.GIFPath == "" {
		o.GIFPath = "orrery.gif"
	}
	return o
}

// Model is the live view of a running system. It owns the system while the
// program runs; all stepping happens inside Update.
type Model struct {
	sys           *sim.System
	opts          Options
	canvas        *Canvas
	camera        *Camera
	theme         Theme
	styles        styles
	focus         int
	trails        [][]geometry.Vector3
	stepsPerFrame int
	running       bool
	showHelp      bool
	status        string
	initial       []body.CelestialBody
	initialDt     float64
	epoch         float64
	energy0       float64
	drift         []float64
	recording     bool
	frames        []*image.Paletted
}

// NewModel wraps sys. The camera is sized so every body is visible around
// the initial focus, which is the first star if there is one.
func NewModel(sys *sim.System, opts Options) Model {
	opts = opts.withDefaults()
	theme := GetTheme(opts.Theme)

	m := Model{
		sys:           sys,
		opts:          opts,
		canvas:        NewCanvas(defaultWidth, defaultHeight),
		theme:         theme,
		styles:        newStyles(theme),
		stepsPerFrame: opts.StepsPerFrame,
		running:       true,
		initial:       sys.Bodies(),
		initialDt:     sys.Timestep(),
		epoch:         sys.Elapsed(),
		energy0:       physics.TotalEnergy(sys.State()),
		drift:         make([]float64, 0, historyCapacity),
	}
	if stars := sys.BodiesOfKind(body.Star); len(stars) > 0 {
		m.focus = stars[0]
	}
	m.camera = NewCamera(m.extent())
	m.resetTrails()
	return m
}

// extent is the largest distance of any body from the focus, with margin.
func (m *Model) extent() float64 {
	bodies := m.sys.Bodies()
	if len(bodies) == 0 {
		return 1
	}
	centre := bodies[m.focus].Position
	far := 0.0
	for _, b := range bodies {
		if d := b.Position.Sub(centre).Magnitude(); d > far && !math.IsInf(d, 0) {
			far = d
		}
	}
	return far * 1.1
}

func (m *Model) resetTrails() {
	m.trails = make([][]geometry.Vector3, m.sys.Len())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-statsWidth-6)
		h := max(8, msg.Height-3)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "up":
		m.sys.ScaleTimestep(1.1)
	case "down":
		m.sys.ScaleTimestep(0.9)
	case "f":
		if id, ok := m.sys.FindByName("Earth"); ok {
			m.setFocus(id)
		} else {
			m.status = "no body named Earth"
		}
	case "tab":
		if n := m.sys.Len(); n > 0 {
			m.setFocus((m.focus + 1) % n)
		}
	case "shift+tab":
		if n := m.sys.Len(); n > 0 {
			m.setFocus((m.focus + n - 1) % n)
		}
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "x":
		m.camera.TiltBy(0.1)
	case "X":
		m.camera.TiltBy(-0.1)
	case "]":
		m.stepsPerFrame = min(maxStepsFrame, m.stepsPerFrame*2)
	case "[":
		m.stepsPerFrame = max(1, m.stepsPerFrame/2)
	case "c":
		m.resetTrails()
	case "r":
		m.reset()
	case "t":
		m.theme = nextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.frames = make([]*image.Paletted, 0)
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) setFocus(id int) {
	if id == m.focus {
		return
	}
	m.focus = id
	m.resetTrails()
}

func (m *Model) stopRecording() {
	if err := saveGIF(m.opts.GIFPath, m.frames); err != nil {
		m.status = "gif: " + err.Error()
	} else if len(m.frames) > 0 {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.opts.GIFPath)
	}
	m.recording = false
	m.frames = nil
}

// step advances the system and records trails and energy drift.
func (m *Model) step() {
	for i := 0; i < m.stepsPerFrame; i++ {
		m.sys.Update()
	}

	bodies := m.sys.Bodies()
	if len(bodies) == 0 {
		return
	}
	centre := bodies[m.focus].Position
	for i, b := range bodies {
		t := append(m.trails[i], b.Position.Sub(centre))
		if len(t) > m.opts.TrailLength {
			t = t[len(t)-m.opts.TrailLength:]
		}
		m.trails[i] = t
	}

	drift := 0.0
	if m.energy0 != 0 {
		drift = math.Abs(physics.TotalEnergy(m.sys.State())-m.energy0) / math.Abs(m.energy0)
	}
	m.drift = append(m.drift, drift)
	if len(m.drift) > historyCapacity {
		m.drift = m.drift[1:]
	}
}

// reset restores the bodies and timestep the view started with. The step
// counter of the system keeps running; elapsed time is shown from here.
func (m *Model) reset() {
	for i, b := range m.initial {
		if err := m.sys.SetBodyState(i, b.Position, b.Velocity); err != nil {
			m.status = err.Error()
			return
		}
	}
	m.sys.SetTimestep(m.initialDt)
	m.epoch = m.sys.Elapsed()
	m.drift = m.drift[:0]
	m.resetTrails()
}

func markerRadius(b body.CelestialBody) int {
	r := int(math.Max(0, math.Round(b.DisplaySize()+1)))
	if b.Kind == body.Star {
		r = max(r, 2)
	}
	return min(r, 4)
}

// draw renders bodies and trails onto the canvas, relative to the focus.
func (m *Model) draw() {
	m.canvas.Clear()
	bodies := m.sys.Bodies()
	if len(bodies) == 0 {
		return
	}
	w, h := m.canvas.Dots()
	centre := bodies[m.focus].Position

	for _, trail := range m.trails {
		for _, p := range trail {
			if x, y, ok := m.camera.Project(p, w, h); ok {
				m.canvas.Set(x, y)
			}
		}
	}
	for _, b := range bodies {
		if x, y, ok := m.camera.Project(b.Position.Sub(centre), w, h); ok {
			m.canvas.Disc(x, y, markerRadius(b))
		}
	}
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	st := m.styles
	bodies := m.sys.Bodies()

	var s strings.Builder
	name := m.opts.Name
	if name == "" {
		name = "orrery"
	}
	s.WriteString(st.header.Render(strings.ToUpper(name)) + "\n")

	switch {
	case m.recording:
		s.WriteString(st.recorder.Render(fmt.Sprintf("● REC %d", len(m.frames))))
	case m.running:
		s.WriteString(st.running.Render("RUNNING"))
	default:
		s.WriteString(st.paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	if len(m.drift) > 1 {
		s.WriteString(st.graph.Render(driftChart(m.drift)) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Elapsed", formatDuration(m.sys.Elapsed()-m.epoch))
	row("Timestep", fmt.Sprintf("%.1f s", m.sys.Timestep()))
	row("Integrator", m.sys.Integrator().Name())
	row("Steps/frame", fmt.Sprintf("%d", m.stepsPerFrame))
	row("Zoom", fmt.Sprintf("%.2fx", m.camera.Zoom))
	if n := len(m.drift); n > 0 {
		row("Drift", fmt.Sprintf("%.3e", m.drift[n-1]))
	}

	if len(bodies) > 0 {
		centre := bodies[m.focus].Position
		s.WriteString("\n")
		for i, b := range bodies {
			if i >= maxListed {
				s.WriteString(st.label.Render(fmt.Sprintf("  +%d more", len(bodies)-maxListed)) + "\n")
				break
			}
			line := fmt.Sprintf("%-9s %s", b.Name, formatDistance(b.Position.Sub(centre).Magnitude()))
			if i == m.focus {
				s.WriteString(swatch(b.Color) + " " + st.focus.Render(line) + "\n")
			} else {
				s.WriteString(swatch(b.Color) + " " + st.value.Render(line) + "\n")
			}
		}
	}

	if m.status != "" {
		s.WriteString("\n" + st.paused.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render(Separator(30, m.theme) + "\nSPC:pause ↑↓:dt tab:focus f:earth\n+-:zoom []:speed ?:help q:quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		st.canvas.Render(m.canvas.String()),
		st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  Space      pause / resume
  Up / Down  timestep x1.1 / x0.9
  Tab        focus next body (Shift+Tab: previous)
  f          focus Earth
  + / -      zoom in / out
  x / X      tilt view
  [ / ]      halve / double steps per frame
  c          clear trails
  r          reset bodies and timestep
  t          cycle theme
  g          start / stop GIF recording
  ?          toggle this help
  q          quit
`

// Focus returns the id of the body the view is centred on.
// driftFloor stands in for zero drift on the log scale.
const driftFloor = 1e-18

// driftChart plots log10 of the relative energy drift so the axis labels
// stay short at any magnitude. A non-finite drift is drawn as 1.
func driftChart(drift []float64) string {
	logs := make([]float64, len(drift))
	for i, d := range drift {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			d = 1
		}
		logs[i] = math.Log10(math.Max(d, driftFloor))
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(4),
		asciigraph.Width(30),
		asciigraph.Precision(1),
		asciigraph.Caption("energy drift (log10)"),
	)
}

func (m Model) Focus() int { return m.focus }

func (m Model) Running() bool { return m.running }

func (m Model) StepsPerFrame() int { return m.stepsPerFrame }

func (m Model) Camera() Camera { return *m.camera }

// Run starts the live view in the alternate screen and blocks until quit.
func Run(sys *sim.System, opts Options) error {
	_, err := tea.NewProgram(NewModel(sys, opts), tea.WithAltScreen()).Run()
	return err
}
