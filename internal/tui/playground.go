package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/tokensim/internal/config"
	"github.com/san-kum/tokensim/internal/sensitivity"
	"github.com/san-kum/tokensim/internal/tokenomics"
	"github.com/san-kum/tokensim/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const (
	customScenario  = "custom"
	defaultTimeline = 12
	sensitivityPct  = 20
)

type state int

const (
	stateMenu state = iota
	statePlay
)

// control is one adjustable knob; the timeframe has no category.
type control struct {
	category tokenomics.Category
	name     string
}

func (c control) isTimeframe() bool { return c.category == "" }

type model struct {
	state     state
	cursor    int
	scenarios []string
	selected  string

	params     tokenomics.Parameters
	controls   []control
	ctrlCursor int
	editing    bool
	editBuf    string
	months     int
	trajectory tokenomics.Trajectory
	shown      int
	playing    bool
	tab        int
	analysis   *sensitivity.Result
	sensErr    error

	width  int
	height int
}

func NewPlayground() model {
	controls := make([]control, 0, 12)
	for _, c := range tokenomics.Categories() {
		for _, name := range tokenomics.ParamNames(c) {
			controls = append(controls, control{category: c, name: name})
		}
	}
	controls = append(controls, control{name: "timeframe"})

	return model{
		state:     stateMenu,
		scenarios: append([]string{customScenario}, config.ListScenarios()...),
		params:    tokenomics.DefaultParameters(),
		controls:  controls,
		months:    defaultTimeline,
		width:     100,
		height:    30,
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

type sensitivityMsg struct {
	result *sensitivity.Result
	err    error
}

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if m.shown >= m.months {
			m.playing = false
			return m, nil
		}
		m.shown++
		return m, tick()
	case sensitivityMsg:
		m.analysis, m.sensErr = msg.result, msg.err
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case statePlay:
		return m.playKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.scenarios[m.cursor]
		m.params = config.ApplyScenario(m.selected)
		m.state = statePlay
		m.ctrlCursor = 0
		m.analysis, m.sensErr = nil, nil
		m.recompute()
	}
	return m, nil
}

func (m model) playKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.set(m.controls[m.ctrlCursor], v)
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
		m.playing = false
	case "up", "k":
		if m.ctrlCursor > 0 {
			m.ctrlCursor--
		}
	case "down", "j":
		if m.ctrlCursor < len(m.controls)-1 {
			m.ctrlCursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "enter":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.value(m.controls[m.ctrlCursor]), 'g', -1, 64)
	case "tab":
		m.tab = (m.tab + 1) % len(viz.Tabs())
	case "r":
		m.params = config.ApplyScenario(m.selected)
		m.recompute()
	case " ", "p":
		if m.playing {
			m.playing = false
			return m, nil
		}
		m.playing = true
		m.shown = 0
		return m, tick()
	case "a":
		c := m.controls[m.ctrlCursor]
		if c.isTimeframe() {
			return m, nil
		}
		return m, analyze(m.params, m.months, c)
	}
	return m, nil
}

func analyze(p tokenomics.Parameters, months int, c control) tea.Cmd {
	return func() tea.Msg {
		a := sensitivity.Analyzer{Base: p, Months: months}
		r, err := a.Analyze(context.Background(), c.category, c.name, sensitivityPct)
		return sensitivityMsg{result: r, err: err}
	}
}

func (m model) value(c control) float64 {
	if c.isTimeframe() {
		return float64(m.months)
	}
	v, _ := m.params.Value(c.category, c.name)
	return v
}

func (m model) bound(c control) tokenomics.Bound {
	if c.isTimeframe() {
		return tokenomics.Bound{Min: 1, Max: tokenomics.MaxMonths, Step: 1}
	}
	b, _ := tokenomics.BoundOf(c.category, c.name)
	return b
}

func (m *model) nudge(dir float64) {
	c := m.controls[m.ctrlCursor]
	b := m.bound(c)
	m.set(c, m.value(c)+dir*b.Step)
}

// set stores v clamped to the control's range and re-runs the forecast.
func (m *model) set(c control, v float64) {
	b := m.bound(c)
	v = math.Max(b.Min, math.Min(b.Max, v))
	// Snap to the step grid to keep repeated nudges free of drift.
	v = math.Round(v/b.Step) * b.Step

	if c.isTimeframe() {
		m.months = int(v)
	} else if p, err := m.params.With(c.category, c.name, v); err == nil {
		m.params = p
		m.selected = customScenario
	}
	m.analysis, m.sensErr = nil, nil
	m.recompute()
}

func (m *model) recompute() {
	m.trajectory = tokenomics.Simulate(m.params, m.months)
	m.shown = m.months
	m.playing = false
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case statePlay:
		return m.viewPlay()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("tokensim") + "  " + dim.Render("tokenomics playground") + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")

	for i, key := range m.scenarios {
		desc := "default parameters"
		name := key
		if s := config.GetScenario(key); s != nil {
			name, desc = s.Name, s.Description
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-22s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-22s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("      ↑↓ select  enter open  q quit") + "\n")
	return b.String()
}

func (m model) viewControls() string {
	var b strings.Builder
	var section tokenomics.Category = "-"
	for i, c := range m.controls {
		if c.category != section {
			section = c.category
			title := string(section)
			if c.isTimeframe() {
				title = "forecast"
			}
			b.WriteString(dimmer.Render(title) + "\n")
		}
		val := strconv.FormatFloat(m.value(c), 'g', 6, 64)
		if m.editing && i == m.ctrlCursor {
			val = m.editBuf + "▋"
		}
		if i == m.ctrlCursor {
			b.WriteString(cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", c.name)) + magenta.Render(fmt.Sprintf("%10s", val)) + "\n")
		} else {
			b.WriteString("  " + dim.Render(fmt.Sprintf("%-18s", c.name)) + dim.Render(fmt.Sprintf("%10s", val)) + "\n")
		}
	}
	return b.String()
}

func (m model) viewSensitivity() string {
	if m.sensErr != nil {
		return yellow.Render(m.sensErr.Error())
	}
	r := m.analysis
	if r == nil {
		return dim.Render("press a to analyze the selected parameter")
	}
	var b strings.Builder
	b.WriteString(cyan.Render(fmt.Sprintf("%s ±%d%%", r.Param, sensitivityPct)) + "\n")
	for _, name := range sensitivity.KeyMetrics {
		impact := r.Impacts[name]
		line := fmt.Sprintf("%-15s %8s", name, viz.Percent(impact))
		if name == r.MostSensitive() {
			b.WriteString(magenta.Render(line) + "\n")
		} else {
			b.WriteString(dim.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m model) viewPlay() string {
	var b strings.Builder

	label := m.selected
	if s := config.GetScenario(m.selected); s != nil {
		label = s.Name
	}
	status := green.Render("●") + " " + dim.Render("ready")
	if m.playing {
		status = yellow.Render("▶") + " " + dim.Render("playing")
	}
	b.WriteString(fmt.Sprintf("\n %s  %s\n\n", cyan.Render(label), status))

	shown := min(m.shown, len(m.trajectory)-1)
	current := m.trajectory[shown]

	left := m.viewControls()
	right := lipgloss.JoinVertical(lipgloss.Left,
		viz.Summary(current, shown),
		"",
		dim.Render("sSTB ")+viz.Sparkline(m.trajectory[:shown+1].Series("sstbPrice"), 40),
		dim.Render("rSTB ")+viz.Sparkline(m.trajectory[:shown+1].Series("rstbPrice"), 40),
		"",
		m.viewSensitivity(),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))

	tab := viz.Tabs()[m.tab]
	if chart, err := viz.ForecastCharts(m.trajectory[:shown+1], tab, max(40, m.width-20)); err == nil {
		first, _, _ := strings.Cut(chart, "\n\n")
		b.WriteString("\n\n" + dim.Render("["+tab+"]") + "\n" + first + "\n")
	}

	b.WriteString("\n" + dim.Render(" ↑↓ select  ←→ adjust  enter edit  tab chart  a analyze  space play  r reset  q back") + "\n")
	return b.String()
}

func RunPlayground() error {
	_, err := tea.NewProgram(NewPlayground(), tea.WithAltScreen()).Run()
	return err
}
