package export

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

// Line is one plotted series.
type Line struct {
	Name   string
	Values []float64
	Color  string
}

var palette = []string{"#00ccff", "#ff00ff", "#00ff88", "#ffcc00", "#ff4444"}

// TrajectoryLines picks metrics out of a trajectory, coloring them in order.
func TrajectoryLines(tr tokenomics.Trajectory, metrics ...string) ([]Line, error) {
	lines := make([]Line, 0, len(metrics))
	for i, name := range metrics {
		series := tr.Series(name)
		if series == nil {
			return nil, fmt.Errorf("unknown metric: %s", name)
		}
		lines = append(lines, Line{Name: name, Values: series, Color: palette[i%len(palette)]})
	}
	return lines, nil
}

// SeriesToSVG plots lines against the month index on shared axes. Non-finite
// values are skipped.
func SeriesToSVG(lines []Line, width, height int) string {
	minY, maxY := math.Inf(1), math.Inf(-1)
	maxX := 1
	for _, l := range lines {
		maxX = max(maxX, len(l.Values)-1)
		for _, v := range l.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}
	if math.IsInf(minY, 1) {
		minY, maxY = 0, 1
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, l := range lines {
		color := l.Color
		if color == "" {
			color = palette[i%len(palette)]
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, html.EscapeString(color)))
		move := true
		for x, v := range l.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				move = true
				continue
			}
			px := float64(x) / float64(maxX) * float64(width)
			py := float64(height) - (v-minY)/rangeY*float64(height)
			if move {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", px, py))
				move = false
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+i*14, html.EscapeString(color), html.EscapeString(l.Name)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func WriteSVG(w io.Writer, lines []Line, width, height int) error {
	_, err := io.WriteString(w, SeriesToSVG(lines, width, height))
	return err
}
