package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

// Forecast tabs.
const (
	TabPrice    = "price"
	TabSupply   = "supply"
	TabUnlocked = "unlocked"
	TabStaking  = "staking"
	TabTVL      = "tvl"
)

var forecastTabs = map[string][]string{
	TabPrice:    {"sstbPrice", "rstbPrice", "sstbStability"},
	TabSupply:   {"circulatingSstb", "circulatingRstb"},
	TabUnlocked: {"sstbUnlocked", "rstbUnlocked"},
	TabStaking:  {"stakedCU", "stakedSstb", "stakedRstb"},
	TabTVL:      {"tvl", "treasuryAssets", "cumulativeRevenue"},
}

func Tabs() []string {
	return []string{TabPrice, TabSupply, TabUnlocked, TabStaking, TabTVL}
}

// ForecastCharts draws one chart per metric of the tab.
func ForecastCharts(tr tokenomics.Trajectory, tab string, width int) (string, error) {
	metrics, ok := forecastTabs[tab]
	if !ok {
		return "", fmt.Errorf("unknown tab: %s", tab)
	}
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, name := range metrics {
		b.WriteString(Chart(tr.Series(name), name, width, 10))
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// Chart plots one series by month.
func Chart(series []float64, caption string, width, height int) string {
	if len(series) == 0 {
		return Subtle.Render("no data for " + caption)
	}
	if len(series) == 1 {
		series = []float64{series[0], series[0]}
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
	)
}
