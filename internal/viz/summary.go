package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

type stat struct {
	label, value string
}

func statBlock(title string, stats []stat) string {
	var b strings.Builder
	b.WriteString(Title.Render(title))
	for _, s := range stats {
		b.WriteString("\n")
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-14s", s.label)))
		b.WriteString(MetricValue.Render(s.value))
	}
	return Panel.Render(b.String())
}

// pegScore is 1 on the peg and 0 at a 10% deviation or more.
func pegScore(price float64) float64 {
	return math.Max(0, 1-math.Abs(price-tokenomics.SstbTargetPrice)/0.1)
}

// Summary renders the command-center view of month m.
func Summary(m tokenomics.Metrics, months int) string {
	stability := m.SstbStability / 100

	tokens := statBlock("Tokens", []stat{
		{"sSTB price", Grade(pegScore(m.SstbPrice), Price(m.SstbPrice))},
		{"rSTB price", Price(m.RstbPrice)},
		{"sSTB supply", Compact(m.CirculatingSstb)},
		{"rSTB supply", Compact(m.CirculatingRstb)},
		{"stability", Bar(stability, 10) + " " + Percent(m.SstbStability)},
	})
	economy := statBlock("Economy", []stat{
		{"TVL", Money(m.TVL)},
		{"treasury", Money(m.TreasuryAssets)},
		{"revenue/mo", Money(m.MonthlyRevenue)},
		{"revenue total", Money(m.CumulativeRevenue)},
		{"volatility", Percent(m.MarketVolatility * 100)},
	})
	network := statBlock("Network", []stat{
		{"compute units", Compact(m.TotalCU)},
		{"staked CU", Compact(m.StakedCU)},
		{"providers", Count(m.ProviderCount)},
		{"provider ROI", fmt.Sprintf("%.2fx", m.ProviderROI)},
	})

	header := Title.Render(fmt.Sprintf("Month %d", months))
	body := lipgloss.JoinHorizontal(lipgloss.Top, tokens, economy, network)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
