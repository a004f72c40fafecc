package viz

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/san-kum/tokensim/internal/sensitivity"
	"github.com/san-kum/tokensim/internal/storage"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

func formatMetric(name string, v float64) string {
	switch name {
	case "sstbPrice", "rstbPrice":
		return Price(v)
	case "treasuryAssets", "tvl", "cumulativeRevenue", "monthlyRevenue":
		return Money(v)
	case "sstbStability":
		return Percent(v)
	case "marketVolatility":
		return Percent(v * 100)
	case "providerCount":
		return Count(v)
	case "providerROI":
		return fmt.Sprintf("%.2fx", v)
	}
	return Compact(v)
}

// MetricsTable lists every numeric metric of m.
func MetricsTable(w io.Writer, m tokenomics.Metrics) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	for _, name := range tokenomics.MetricNames() {
		v, _ := m.Field(name)
		if err := table.Append([]string{name, formatMetric(name, v)}); err != nil {
			return err
		}
	}
	return table.Render()
}

// CompareTable puts one column per labelled snapshot.
func CompareTable(w io.Writer, labels []string, ms []tokenomics.Metrics) error {
	table := tablewriter.NewWriter(w)
	header := []any{"Metric"}
	for _, l := range labels {
		header = append(header, l)
	}
	table.Header(header...)
	for _, name := range tokenomics.MetricNames() {
		row := []string{name}
		for _, m := range ms {
			v, _ := m.Field(name)
			row = append(row, formatMetric(name, v))
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// SensitivityTable prints the sweep followed by the impact ranking.
func SensitivityTable(w io.Writer, r *sensitivity.Result) error {
	sweep := tablewriter.NewWriter(w)
	sweep.Header(r.Param, r.Metric, "vs baseline")
	for _, p := range r.Variations {
		delta := "-"
		if r.Baseline != 0 {
			delta = fmt.Sprintf("%+.2f%%", (p.Value-r.Baseline)/r.Baseline*100)
		}
		row := []string{strconv.FormatFloat(p.ParamValue, 'g', 6, 64), formatMetric(r.Metric, p.Value), delta}
		if err := sweep.Append(row); err != nil {
			return err
		}
	}
	if err := sweep.Render(); err != nil {
		return err
	}

	names := make([]string, 0, len(r.Impacts))
	for name := range r.Impacts {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool { return r.Impacts[names[i]] > r.Impacts[names[j]] })

	impacts := tablewriter.NewWriter(w)
	impacts.Header("Metric", "Impact")
	for _, name := range names {
		if err := impacts.Append([]string{name, Percent(r.Impacts[name])}); err != nil {
			return err
		}
	}
	return impacts.Render()
}

func RunsTable(w io.Writer, runs []storage.RunMetadata) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Scenario", "Months", "Created", "sSTB", "TVL")
	for _, r := range runs {
		row := []string{
			r.ID,
			r.Scenario,
			strconv.Itoa(r.Months),
			r.Timestamp.Format("2006-01-02 15:04:05"),
			Price(r.Final.SstbPrice),
			Money(r.Final.TVL),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
