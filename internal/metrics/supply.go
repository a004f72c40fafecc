package metrics

import (
	"math"
	"time"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

type PeakRstb struct {
	name string
	peak float64
}

func NewPeakRstb() *PeakRstb {
	return &PeakRstb{name: "peak_rstb_price"}
}

func (p *PeakRstb) Name() string { return p.name }

func (p *PeakRstb) OnMonth(month int, s tokenomics.State) {
	p.peak = math.Max(p.peak, s.RstbPrice)
}

func (p *PeakRstb) Value() float64 { return p.peak }

func (p *PeakRstb) Reset() { p.peak = 0 }

// UnlockMonotonicity is 1 while both unlocked totals never decrease and stay
// within their total supply, and 0 once either rule breaks.
type UnlockMonotonicity struct {
	name      string
	sstb      float64
	rstb      float64
	violation bool
}

func NewUnlockMonotonicity() *UnlockMonotonicity {
	u := &UnlockMonotonicity{name: "unlock_monotone"}
	u.Reset()
	return u
}

func (u *UnlockMonotonicity) Name() string { return u.name }

func (u *UnlockMonotonicity) OnMonth(month int, s tokenomics.State) {
	if s.SstbUnlocked < u.sstb || s.RstbUnlocked < u.rstb ||
		s.SstbUnlocked > tokenomics.SstbTotalSupply || s.RstbUnlocked > tokenomics.RstbTotalSupply {
		u.violation = true
	}
	u.sstb, u.rstb = s.SstbUnlocked, s.RstbUnlocked
}

func (u *UnlockMonotonicity) Value() float64 {
	if u.violation {
		return 0
	}
	return 1
}

func (u *UnlockMonotonicity) Reset() {
	initial := tokenomics.InitialState()
	u.sstb, u.rstb = initial.SstbUnlocked, initial.RstbUnlocked
	u.violation = false
}

// Finite is 1 while every reported quantity is a finite number.
type Finite struct {
	name      string
	violation bool
}

func NewFinite() *Finite {
	return &Finite{name: "finite"}
}

func (f *Finite) Name() string { return f.name }

func (f *Finite) OnMonth(month int, s tokenomics.State) {
	for _, v := range s.Snapshot(time.Time{}).Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			f.violation = true
			return
		}
	}
}

func (f *Finite) Value() float64 {
	if f.violation {
		return 0
	}
	return 1
}

func (f *Finite) Reset() { f.violation = false }
