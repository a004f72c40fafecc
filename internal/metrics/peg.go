package metrics

import (
	"math"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

// PegDeviation is the largest distance of the sSTB price from its target.
type PegDeviation struct {
	name string
	max  float64
}

func NewPegDeviation() *PegDeviation {
	return &PegDeviation{name: "peg_deviation"}
}

func (p *PegDeviation) Name() string { return p.name }

func (p *PegDeviation) OnMonth(month int, s tokenomics.State) {
	if d := math.Abs(s.SstbPrice - tokenomics.SstbTargetPrice); d > p.max {
		p.max = d
	}
}

func (p *PegDeviation) Value() float64 { return p.max }

func (p *PegDeviation) Reset() { p.max = 0 }

// MinStability is the lowest stability score seen; 100 before any month.
type MinStability struct {
	name    string
	min     float64
	samples int
}

func NewMinStability() *MinStability {
	return &MinStability{name: "min_stability"}
}

func (m *MinStability) Name() string { return m.name }

func (m *MinStability) OnMonth(month int, s tokenomics.State) {
	if m.samples == 0 || s.SstbStability < m.min {
		m.min = s.SstbStability
	}
	m.samples++
}

func (m *MinStability) Value() float64 {
	if m.samples == 0 {
		return 100
	}
	return m.min
}

func (m *MinStability) Reset() {
	m.min = 0
	m.samples = 0
}
