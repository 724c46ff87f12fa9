package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballistics/internal/physics"
	"github.com/san-kum/ballistics/internal/report"
	"github.com/san-kum/ballistics/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	angleStep  = 1.0
	heightStep = 5.0
)

type model struct {
	runner      *sim.Runner
	projectiles []sim.Projectile
	env         physics.Environment
	target      sim.Target

	angleDeg float64
	cursor   int
	vacuum   bool

	results []sim.Result
	err     error
	pending bool

	width  int
	height int
}

type resultsMsg struct {
	results []sim.Result
	err     error
}

// NewInteractiveApp builds the explorer over a fixed batch. The angle and
// target height are adjusted from the keyboard and the batch re-run on
// every change.
func NewInteractiveApp(runner *sim.Runner, projectiles []sim.Projectile, angleDeg float64, target sim.Target, env physics.Environment) tea.Model {
	return model{
		runner:      runner,
		projectiles: projectiles,
		env:         env,
		target:      target,
		angleDeg:    angleDeg,
		width:       80,
		height:      24,
	}
}

func (m model) Init() tea.Cmd { return m.simulate() }

func (m model) simulate() tea.Cmd {
	runner, projectiles := m.runner, m.projectiles
	angle, target, env := sim.Radians(m.angleDeg), m.target, m.environment()
	return func() tea.Msg {
		results, err := runner.Run(context.Background(), projectiles, angle, target, env)
		return resultsMsg{results: results, err: err}
	}
}

func (m model) environment() physics.Environment {
	if m.vacuum {
		return m.env.Vacuum()
	}
	return m.env
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultsMsg:
		m.pending = false
		m.results, m.err = msg.results, msg.err
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	changed := false
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.angleDeg = math.Max(-180, m.angleDeg-angleStep)
		changed = true
	case "right", "l":
		m.angleDeg = math.Min(180, m.angleDeg+angleStep)
		changed = true
	case "up", "k":
		m.target.Height += heightStep
		changed = true
	case "down", "j":
		m.target.Height = math.Max(0, m.target.Height-heightStep)
		changed = true
	case "tab":
		if len(m.projectiles) > 0 {
			m.cursor = (m.cursor + 1) % len(m.projectiles)
		}
	case "shift+tab":
		if len(m.projectiles) > 0 {
			m.cursor = (m.cursor + len(m.projectiles) - 1) % len(m.projectiles)
		}
	case "v":
		m.vacuum = !m.vacuum
		changed = true
	}
	if changed {
		m.pending = true
		return m, m.simulate()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("   " + cyan.Render("b a l l i s t i c s"))
	if m.vacuum {
		b.WriteString("  " + magenta.Render("vacuum"))
	}
	if m.pending {
		b.WriteString("  " + dim.Render("running…"))
	}
	b.WriteString("\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 40)) + "\n\n")

	b.WriteString(fmt.Sprintf("   %s %s   %s %s\n\n",
		dim.Render("angle"), white.Render(fmt.Sprintf("%6.1f°", m.angleDeg)),
		dim.Render("target"), white.Render(fmt.Sprintf("%6.1f m", m.target.Height))))

	if m.err != nil {
		b.WriteString("   " + red.Render(m.err.Error()) + "\n")
	}

	for i, res := range m.results {
		b.WriteString(m.line(i, res) + "\n")
	}

	if m.cursor < len(m.results) {
		sel := m.results[m.cursor]
		cw, ch := m.width-10, m.height-len(m.results)-14
		if cw < 30 {
			cw = 30
		}
		if ch < 6 {
			ch = 6
		}
		b.WriteString("\n")
		if sel.OK() {
			b.WriteString(report.PathPlot(sel, m.runner.Options().Dim.VerticalAxis(), cw, ch, m.target.Height))
			b.WriteString("   " + dim.Render("speed ") + cyan.Render(sparkline(speeds(sel), 40)) + "\n")
		} else {
			b.WriteString("   " + yellow.Render(sel.Err.Error()) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("   ←→ angle  ↑↓ target  tab projectile  v vacuum  q quit") + "\n")
	return b.String()
}

func (m model) line(i int, res sim.Result) string {
	name := fmt.Sprintf("%-22s", res.Projectile.Name)
	mark := "  "
	if i == m.cursor {
		mark = cyan.Render("▸ ")
		name = white.Render(name)
	} else {
		name = dim.Render(name)
	}

	status := dim.Render("miss")
	switch {
	case !res.OK():
		status = yellow.Render("failed")
	case res.Metrics.Injured:
		status = red.Render("INJURED")
	}

	met := res.Metrics
	return fmt.Sprintf("   %s%s %s %s %s %s",
		mark, name,
		dim.Render("h")+green.Render(fmt.Sprintf("%9s", report.Metric(met.MaxHeightClosedForm))),
		dim.Render("r")+green.Render(fmt.Sprintf("%10s", report.Metric(met.MaxDistanceClosedForm))),
		dim.Render("apex")+magenta.Render(fmt.Sprintf("%9s", report.Metric(met.Observed.ApexHeight))),
		status)
}

func speeds(res sim.Result) []float64 {
	traj := res.Trajectory
	out := make([]float64, traj.Len())
	for i := range out {
		out[i] = traj.States[i][:traj.Dim].Norm()
	}
	return out
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		idx = max(0, min(7, idx))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

func RunInteractive(runner *sim.Runner, projectiles []sim.Projectile, angleDeg float64, target sim.Target, env physics.Environment) error {
	p := tea.NewProgram(NewInteractiveApp(runner, projectiles, angleDeg, target, env), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
