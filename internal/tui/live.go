package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/tokensim/internal/tokenomics"
	"github.com/san-kum/tokensim/internal/viz"
)

const (
	width       = 60
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws a progress frame after each simulated month. A
// non-positive frame rate draws every month.
type LiveRenderer struct {
	label     string
	months    int
	frameRate int
	lastFrame time.Time
	out       io.Writer
	sstb      []float64
	rstb      []float64
}

func NewLiveRenderer(label string, months, frameRate int, out io.Writer) *LiveRenderer {
	return &LiveRenderer{
		label:     label,
		months:    months,
		frameRate: frameRate,
		out:       out,
		sstb:      make([]float64, 0, months),
		rstb:      make([]float64, 0, months),
	}
}

func (r *LiveRenderer) OnMonth(month int, s tokenomics.State) {
	r.sstb = append(r.sstb, s.SstbPrice)
	r.rstb = append(r.rstb, s.RstbPrice)

	if r.frameRate > 0 && month < r.months {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = time.Now()
	r.render(month, s)
}

func (r *LiveRenderer) render(month int, s tokenomics.State) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  month %d/%d\n", r.label, month, r.months))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	progress := 1.0
	if r.months > 0 {
		progress = float64(month) / float64(r.months)
	}
	b.WriteString("  " + viz.Bar(progress, width) + "\n\n")
	b.WriteString("  sSTB " + viz.Sparkline(r.sstb, width-5) + "\n")
	b.WriteString("  rSTB " + viz.Sparkline(r.rstb, width-5) + "\n")
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  sSTB=%s rSTB=%s TVL=%s CU=%s\n",
		viz.Price(s.SstbPrice), viz.Price(s.RstbPrice), viz.Money(s.TVL), viz.Compact(s.TotalCU)))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
