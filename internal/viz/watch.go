package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/xulfus/ai-world3/internal/sim"
	"github.com/xulfus/ai-world3/internal/world"
)

const (
	watchGraphWidth  = 56
	watchGraphHeight = 6
	historyCap       = 600
)

type tickMsg time.Time

// WatchModel steps a scenario live in the terminal, one frame per tick,
// with sparkline histories of the headline stocks.
type WatchModel struct {
	scenario      string
	stepper       *sim.Stepper
	current       sim.Step
	stepsPerFrame int
	frameRate     int
	running       bool
	done          bool
	err           error

	histories map[string][]float64
}

var watchSeries = []string{"stability", "environment", "unemployment_rate", "k_ai"}

// NewWatch builds the live view for a parameter set. stepsPerFrame controls
// how much simulated time passes per frame.
func NewWatch(scenario string, p world.Params, cfg sim.Config, frameRate int) (WatchModel, error) {
	stepper, err := sim.NewStepper(p, cfg)
	if err != nil {
		return WatchModel{}, err
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	m := WatchModel{
		scenario:      scenario,
		stepper:       stepper,
		current:       stepper.Initial(),
		stepsPerFrame: 2,
		frameRate:     frameRate,
		running:       true,
		histories:     make(map[string][]float64, len(watchSeries)),
	}
	m.record(m.current)
	return m, nil
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m WatchModel) Init() tea.Cmd { return m.tick() }

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case tickMsg:
		if m.running && !m.done {
			for i := 0; i < m.stepsPerFrame && !m.stepper.Done(); i++ {
				step, err := m.stepper.Step()
				if err != nil {
					m.err = err
					m.done = true
					break
				}
				m.current = step
				m.record(step)
			}
			if m.stepper.Done() {
				m.done = true
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *WatchModel) record(step sim.Step) {
	values := map[string]float64{
		"stability":         step.Stocks.Stability,
		"environment":       step.Stocks.Environment,
		"unemployment_rate": step.Flows.Unemployment,
		"k_ai":              step.Stocks.KAI,
	}
	for _, name := range watchSeries {
		h := append(m.histories[name], values[name])
		if len(h) > historyCap {
			h = h[len(h)-historyCap:]
		}
		m.histories[name] = h
	}
}

func (m WatchModel) View() string {
	var panels []string
	for _, name := range watchSeries {
		h := m.histories[name]
		if len(h) < 2 {
			h = append(h, h...)
		}
		graph := asciigraph.Plot(downsample(h, watchGraphWidth),
			asciigraph.Height(watchGraphHeight),
			asciigraph.Width(watchGraphWidth),
			asciigraph.Caption(name),
		)
		panels = append(panels, panelStyle.Render(graph))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, panels[0], panels[1])
	right := lipgloss.JoinVertical(lipgloss.Left, panels[2], panels[3])

	status := fmt.Sprintf("t=%.1f  stability=%.3f  env=%.3f  unemployment=%.1f%%  resources=%.0f",
		m.current.Time,
		m.current.Stocks.Stability,
		m.current.Stocks.Environment,
		100*m.current.Flows.Unemployment,
		m.current.Stocks.Resources,
	)
	if m.err != nil {
		status = warnStyle.Render(m.err.Error())
	} else if m.done {
		status += okStyle.Render("  [finished]")
	} else if !m.running {
		status += "  [paused]"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("ai-world3 watch · %s", m.scenario)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(status))
	b.WriteString(helpStyle.Render("\nspace pause · q quit"))
	return b.String()
}
