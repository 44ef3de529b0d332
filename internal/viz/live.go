package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
	"github.com/san-kum/planets/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type Options struct {
	Title       string
	FPS         int
	TrailLength int
	HalfExtent  float64
}

func DefaultOptions() Options {
	return Options{
		Title:       "planets",
		FPS:         60,
		TrailLength: 64,
		HalfExtent:  600,
	}
}

// Model owns the population while the program runs. Every TickMsg applies
// one simulation tick when not paused.
type Model struct {
	sim           *sim.Simulator
	gravity       *physics.Gravity
	pop           dynamo.Population
	initial       dynamo.Population
	trails        []*Trail
	canvas        *Canvas
	view          Viewport
	opts          Options
	running       bool
	showHelp      bool
	energyHistory []float64
	err           error
}

func NewModel(g *physics.Gravity, pop dynamo.Population, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	if opts.HalfExtent <= 0 {
		opts.HalfExtent = DefaultOptions().HalfExtent
	}

	s := sim.New(g)
	s.SetValidate(true)

	m := Model{
		sim:           s,
		gravity:       g,
		pop:           pop,
		initial:       pop.Clone(),
		canvas:        NewCanvas(width, height),
		view:          Viewport{HalfExtent: opts.HalfExtent},
		opts:          opts,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.resetTrails()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running && m.err == nil
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "+", "=":
			m.view = m.view.Zoom(0.8)
		case "-", "_":
			m.view = m.view.Zoom(1.25)
		case "left", "h":
			m.view = m.view.Pan(-0.1, 0)
		case "right", "l":
			m.view = m.view.Pan(0.1, 0)
		case "up", "k":
			m.view = m.view.Pan(0, 0.1)
		case "down", "j":
			m.view = m.view.Pan(0, -0.1)
		case "c":
			m.view.Center = m.gravity.CenterOfMass(m.pop)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one tick and records trails and energy. A non-finite
// state pauses the model and keeps the error for display.
func (m *Model) step() {
	if err := m.sim.Tick(m.pop); err != nil {
		m.err = err
		m.running = false
		return
	}

	for i, b := range m.pop {
		m.trails[i].Push(b.Position)
	}

	m.energyHistory = append(m.energyHistory, m.gravity.Energy(m.pop))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	copy(m.pop, m.initial)
	m.sim.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.err = nil
	m.running = true
	m.resetTrails()
}

func (m *Model) resetTrails() {
	length := m.opts.TrailLength
	m.trails = make([]*Trail, len(m.pop))
	for i, b := range m.pop {
		m.trails[i] = NewTrail(length, b.Position)
	}
}

func (m *Model) draw() {
	m.canvas.Clear()

	for _, tr := range m.trails {
		// Older samples are thinned out so the trail fades.
		for i := 0; i < tr.Len(); i++ {
			if i > tr.Len()/2 && i%2 == 1 {
				continue
			}
			x, y := m.view.Project(m.canvas, tr.At(i))
			m.canvas.Set(x, y)
		}
	}

	for _, b := range m.pop {
		x, y := m.view.Project(m.canvas, b.Position)
		m.canvas.Disc(x, y, m.view.Radius(m.canvas, BodyRadius(b.Mass)))
	}
}

// BodyRadius is the drawn radius of a body in world units.
func BodyRadius(mass float64) float64 {
	return math.Sqrt(mass / 100)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.opts.Title)) + "\n")
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.sim.TickCount())) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.pop))) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Momentum") + valueStyle.Render(fmt.Sprintf("%.3e", m.gravity.Momentum(m.pop).Len())) + "\n")
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(fmt.Sprintf("±%.0f @ (%.0f, %.0f)", m.view.HalfExtent, m.view.Center.X, m.view.Center.Y)) + "\n")

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause N:Step R:Reset\n+/-:Zoom ←→↑↓:Pan C:Center\n?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  N        - Single tick while paused ║
║  R        - Reset simulation         ║
║  +/-      - Zoom in/out              ║
║  Arrows   - Pan                      ║
║  C        - Center on mass           ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view on the terminal and blocks until the user quits.
func Run(g *physics.Gravity, pop dynamo.Population, opts Options) error {
	p := tea.NewProgram(NewModel(g, pop, opts))
	_, err := p.Run()
	return err
}
