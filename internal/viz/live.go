package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/swsim/internal/ocean"
)

const (
	historyCapacity = 200
	maxBurst        = 1 << 14
	frameInterval   = time.Second / 20
)

type TickMsg time.Time

// Model owns an engine and advances it one burst per tick.
type Model struct {
	params   ocean.Params
	engine   *ocean.Engine
	heat     *HeatMap
	recorder *Recorder
	name     string

	burst     int
	running   bool
	recording bool
	energy    []float64
	status    string
	gifPath   func() string
}

func NewModel(name string, p ocean.Params, burst int, heat *HeatMap) (Model, error) {
	e, err := ocean.New(p)
	if err != nil {
		return Model{}, err
	}
	if burst < 1 {
		burst = 1
	}
	return Model{
		params:   p,
		engine:   e,
		heat:     heat,
		recorder: NewRecorder(heat.Palette, 8, 5),
		name:     name,
		burst:    burst,
		running:  true,
		gifPath: func() string {
			return fmt.Sprintf("swsim_%d.gif", time.Now().Unix())
		},
	}, nil
}

func (m Model) Engine() *ocean.Engine { return m.engine }

func (m Model) Burst() int { return m.burst }

func (m Model) Running() bool { return m.running }

func (m Model) Recording() bool { return m.recording }

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

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
			m.burst = min(m.burst*2, maxBurst)
		case "-", "_":
			m.burst = max(m.burst/2, 1)
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.recorder.Reset()
			} else {
				m.recording = true
				m.status = ""
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.engine.Advance(m.burst)
	snap := m.engine.Snapshot()
	m.energy = append(m.energy, snap.KineticEnergy())
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
	if m.recording {
		m.recorder.OnFrame(snap)
	}
	if !snap.IsFinite() {
		m.running = false
		m.status = "diverged at step " + fmt.Sprint(m.engine.Steps())
	}
}

func (m *Model) reset() {
	e, err := ocean.New(m.params)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.engine = e
	m.energy = nil
	m.status = ""
}

func (m *Model) saveGIF() {
	if m.recorder.Frames() == 0 {
		return
	}
	path := m.gifPath()
	f, err := os.Create(path)
	if err != nil {
		m.status = err.Error()
		return
	}
	defer f.Close()
	if err := m.recorder.Encode(f); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Frames(), path)
}

func (m Model) View() string {
	snap := m.engine.Snapshot()
	gridView := gridStyle.Render(m.heat.Render(snap))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	switch {
	case m.recording:
		s.WriteString(statusRecording.Render(fmt.Sprintf("REC %d", m.recorder.Frames())) + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	lo, hi := snap.HeightRange()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(Days(snap.Time)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprint(snap.Step)) + "\n")
	s.WriteString(labelStyle.Render("Burst") + valueStyle.Render(fmt.Sprint(m.burst)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4g", snap.KineticEnergy())) + "\n")
	s.WriteString(labelStyle.Render("H range") + valueStyle.Render(fmt.Sprintf("%.3f .. %.3f", lo, hi)) + "\n")
	s.WriteString(labelStyle.Render("Rotation") + valueStyle.Render(m.params.Rotation.String()) + "\n")
	s.WriteString(labelStyle.Render("Wind") + valueStyle.Render(m.params.Wind.String()) + "\n")
	if m.status != "" {
		s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Burst G:Record"))

	return lipgloss.JoinHorizontal(lipgloss.Top, gridView, statsStyle.Render(s.String()))
}
