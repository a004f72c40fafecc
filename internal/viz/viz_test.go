package viz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/tokensim/internal/sensitivity"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.5, "12.5"},
		{999, "999"},
		{1000, "1K"},
		{2518170.1168, "2.52M"},
		{2273412390, "2.27B"},
		{10_000_000_000, "10B"},
		{-45000, "-45K"},
	}
	for _, tt := range tests {
		if got := Compact(tt.in); got != tt.want {
			t.Errorf("Compact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := Money(4567626.75); got != "$4.57M" {
		t.Errorf("got %q", got)
	}
	if got := Money(-1500); got != "-$1.5K" {
		t.Errorf("got %q", got)
	}
}

func TestMetricsTable(t *testing.T) {
	var buf bytes.Buffer
	m := tokenomics.Calculate(tokenomics.DefaultParameters(), 12)
	if err := MetricsTable(&buf, m); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, name := range tokenomics.MetricNames() {
		if !strings.Contains(out, name) {
			t.Errorf("table missing %s", name)
		}
	}
}

func TestSensitivityTable(t *testing.T) {
	r, err := sensitivity.Run(tokenomics.FeeStructure, "bridgeFee", 20)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := SensitivityTable(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(strings.ToUpper(out), "IMPACT") {
		t.Error("impact table missing")
	}
	if !strings.Contains(out, "monthlyRevenue") {
		t.Error("tracked metric missing")
	}
}

func TestForecastCharts(t *testing.T) {
	tr := tokenomics.Simulate(tokenomics.DefaultParameters(), 24)
	for _, tab := range Tabs() {
		out, err := ForecastCharts(tr, tab, 60)
		if err != nil {
			t.Fatalf("%s: %v", tab, err)
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("%s: empty chart", tab)
		}
	}
	if _, err := ForecastCharts(tr, "bogus", 60); err == nil {
		t.Error("expected error for unknown tab")
	}
}

func TestSummary(t *testing.T) {
	out := Summary(tokenomics.Calculate(tokenomics.DefaultParameters(), 12), 12)
	for _, want := range []string{"Month 12", "sSTB price", "TVL", "providers"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 5); got != "─────" {
		t.Errorf("empty sparkline %q", got)
	}
	out := Sparkline([]float64{1, 2, 3, 4}, 4)
	if !strings.Contains(out, "█") || !strings.Contains(out, "▁") {
		t.Errorf("unexpected sparkline %q", out)
	}
}
