package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/tokensim/internal/config"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlaygroundOpensScenario(t *testing.T) {
	m := NewPlayground()
	if m.scenarios[0] != customScenario {
		t.Fatalf("expected custom first, got %v", m.scenarios)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	want := m.scenarios[1]
	if m.state != statePlay || m.selected != want {
		t.Fatalf("expected play state for %s, got %v %s", want, m.state, m.selected)
	}
	if m.params != config.ApplyScenario(want) {
		t.Error("scenario parameters not applied")
	}
	if len(m.trajectory) != defaultTimeline+1 {
		t.Errorf("expected %d snapshots, got %d", defaultTimeline+1, len(m.trajectory))
	}
	if !strings.Contains(m.View(), "initialCUGrowth") {
		t.Error("controls not rendered")
	}
}

func TestPlaygroundAdjust(t *testing.T) {
	m := press(NewPlayground(), tea.KeyMsg{Type: tea.KeyEnter})

	// First control is initialCUGrowth with a 0.01 step.
	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.params.System.InitialCUGrowth; got < 0.1699 || got > 0.1701 {
		t.Errorf("expected 0.17, got %v", got)
	}

	// Growth rate drives totalCU.
	before := m.trajectory.Final().TotalCU
	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	if m.trajectory.Final().TotalCU <= before {
		t.Error("forecast not recomputed")
	}
}

func TestPlaygroundTimeframe(t *testing.T) {
	m := press(NewPlayground(), tea.KeyMsg{Type: tea.KeyEnter})
	for range m.controls {
		m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace},
		runes("9"), runes("9"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.months != tokenomics.MaxMonths {
		t.Errorf("timeframe should clamp to %d, got %d", tokenomics.MaxMonths, m.months)
	}
	if len(m.trajectory) != tokenomics.MaxMonths+1 {
		t.Errorf("got %d snapshots", len(m.trajectory))
	}
}

func TestPlaygroundSensitivity(t *testing.T) {
	m := press(NewPlayground(), tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.Update(runes("a"))
	if cmd == nil {
		t.Fatal("expected analysis command")
	}
	next, _ := m.Update(cmd())
	m = next.(model)
	if m.sensErr != nil || m.analysis == nil {
		t.Fatalf("analysis failed: %v", m.sensErr)
	}
	if !strings.Contains(m.View(), m.analysis.MostSensitive()) {
		t.Error("impacts not rendered")
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer("defaults", 3, 0, &buf)
	e := &tokenomics.Engine{Observers: []tokenomics.Observer{r}}
	e.Calculate(tokenomics.DefaultParameters(), 3)

	out := buf.String()
	if strings.Count(out, clearScreen) != 3 {
		t.Errorf("expected 3 frames, got %d", strings.Count(out, clearScreen))
	}
	if !strings.Contains(out, "month 3/3") {
		t.Error("final frame missing")
	}
}
