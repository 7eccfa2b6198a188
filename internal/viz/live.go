package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partsim/internal/scene"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	historyCapacity = 600
)

type tickMsg time.Time

// Model animates one scene in the terminal, stepping the world at a
// fixed rate and drawing particles and link segments on a braille
// canvas with a stats sidebar.
type Model struct {
	sceneName string
	params    scene.Params
	sc        *scene.Scene
	canvas    *Canvas

	dt      float64
	fps     int
	elapsed float64
	running bool

	energyHistory []float64
}

func NewModel(sceneName string, params scene.Params, dt float64, fps int) (Model, error) {
	sc, err := scene.Build(sceneName, params)
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 60
	}
	return Model{
		sceneName:     sceneName,
		params:        params,
		sc:            sc,
		canvas:        NewCanvas(canvasCols, canvasRows),
		dt:            dt,
		fps:           fps,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
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
			m.running = !m.running
		case "r":
			if sc, err := scene.Build(m.sceneName, m.params); err == nil {
				m.sc = sc
				m.elapsed = 0
				m.energyHistory = m.energyHistory[:0]
			}
		}
	case tickMsg:
		if m.running {
			m.sc.Step(m.dt)
			m.elapsed += m.dt

			m.energyHistory = append(m.energyHistory, m.kineticEnergy())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) kineticEnergy() float64 {
	total := 0.0
	for _, p := range m.sc.World.Particles() {
		if !p.HasFiniteMass() {
			continue
		}
		v := p.Velocity.Len()
		total += 0.5 * p.Mass() * v * v
	}
	return total
}

// viewport fits all particles with a margin, keeping a minimum extent
// so a settled scene does not zoom into noise.
func (m *Model) viewport() Viewport {
	particles := m.sc.World.Particles()
	if len(particles) == 0 {
		return Viewport{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}
	}

	first := particles[0].Position
	v := Viewport{MinX: first.X(), MaxX: first.X(), MinY: first.Y(), MaxY: first.Y()}
	for _, p := range particles[1:] {
		pos := p.Position
		if pos.X() < v.MinX {
			v.MinX = pos.X()
		}
		if pos.X() > v.MaxX {
			v.MaxX = pos.X()
		}
		if pos.Y() < v.MinY {
			v.MinY = pos.Y()
		}
		if pos.Y() > v.MaxY {
			v.MaxY = pos.Y()
		}
	}

	const minExtent = 8.0
	if v.MaxX-v.MinX < minExtent {
		mid := (v.MinX + v.MaxX) / 2
		v.MinX, v.MaxX = mid-minExtent/2, mid+minExtent/2
	}
	if v.MaxY-v.MinY < minExtent {
		mid := (v.MinY + v.MaxY) / 2
		v.MinY, v.MaxY = mid-minExtent/2, mid+minExtent/2
	}

	marginX := (v.MaxX - v.MinX) * 0.1
	marginY := (v.MaxY - v.MinY) * 0.1
	v.MinX -= marginX
	v.MaxX += marginX
	v.MinY -= marginY
	v.MaxY += marginY
	return v
}

func (m *Model) draw() {
	m.canvas.Clear()
	vp := m.viewport()
	particles := m.sc.World.Particles()

	for _, seg := range m.sc.Segments {
		if seg[0] >= len(particles) || seg[1] >= len(particles) {
			continue
		}
		a := particles[seg[0]].Position
		b := particles[seg[1]].Position
		ax, ay := vp.Project(m.canvas, a.X(), a.Y())
		bx, by := vp.Project(m.canvas, b.X(), b.Y())
		m.canvas.Line(ax, ay, bx, by)
	}

	for _, p := range particles {
		x, y := vp.Project(m.canvas, p.Position.X(), p.Position.Y())
		m.canvas.Dot(x, y, 1)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.elapsed)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.sc.World.Particles()))) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", m.sc.World.ContactsUsed())) + "\n")
	s.WriteString(labelStyle.Render("Iterations") + valueStyle.Render(fmt.Sprintf("%d", m.sc.World.IterationsUsed())) + "\n")

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", energy)) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause  R:Reset  Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
