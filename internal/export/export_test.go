package export

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

func TestSeriesToSVG(t *testing.T) {
	tr := tokenomics.Simulate(tokenomics.DefaultParameters(), 12)
	lines, err := TrajectoryLines(tr, "sstbPrice", "rstbPrice")
	if err != nil {
		t.Fatal(err)
	}
	svg := SeriesToSVG(lines, 400, 200)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete svg document")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if !strings.Contains(svg, ">sstbPrice</text>") {
		t.Error("legend missing")
	}
}

func TestSeriesToSVGSkipsNonFinite(t *testing.T) {
	svg := SeriesToSVG([]Line{{Name: "x", Values: []float64{1, math.NaN(), 2, 3}}}, 100, 100)
	if strings.Contains(svg, "NaN") {
		t.Error("NaN leaked into path")
	}
	if strings.Count(svg, "M") < 2 {
		t.Error("gap should start a new segment")
	}
}

func TestTrajectoryLinesUnknown(t *testing.T) {
	if _, err := TrajectoryLines(tokenomics.Simulate(tokenomics.DefaultParameters(), 2), "nope"); err == nil {
		t.Error("expected error")
	}
}

func TestWriteJSON(t *testing.T) {
	p := tokenomics.DefaultParameters()
	tr := tokenomics.Simulate(p, 3)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewData("r1", "balancedAscent", p, tr)); err != nil {
		t.Fatal(err)
	}

	var back Data
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Months != 3 || back.Seed != 267 || len(back.Trajectory) != 4 {
		t.Errorf("unexpected export %+v", back)
	}
	if back.Parameters != p {
		t.Error("parameters changed")
	}
	if !strings.Contains(buf.String(), `"systemParameters"`) {
		t.Error("expected camelCase key names")
	}
}
