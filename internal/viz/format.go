package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Compact shortens a quantity: 2518170 becomes "2.52M", 2.27e9 "2.27B".
func Compact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	if math.Abs(v) < 1000 {
		return trim(v)
	}
	scaled, prefix := humanize.ComputeSI(v)
	switch prefix {
	case "k":
		prefix = "K"
	case "G":
		prefix = "B"
	}
	return trim(scaled) + prefix
}

func trim(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func Money(v float64) string {
	if v < 0 {
		return "-$" + Compact(-v)
	}
	return "$" + Compact(v)
}

// Price keeps four decimals; token prices sit near 1 and 0.1.
func Price(v float64) string {
	return "$" + humanize.FormatFloat("#,###.####", v)
}

func Percent(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + "%"
}

func Count(v float64) string {
	return humanize.Commaf(math.Floor(v))
}
