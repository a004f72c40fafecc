package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

// Data is the JSON form of a run.
type Data struct {
	ID         string                `json:"id,omitempty"`
	Scenario   string                `json:"scenario"`
	Months     int                   `json:"months"`
	Seed       int64                 `json:"seed"`
	Parameters tokenomics.Parameters `json:"parameters"`
	Trajectory tokenomics.Trajectory `json:"trajectory"`
}

func NewData(id, scenario string, p tokenomics.Parameters, tr tokenomics.Trajectory) Data {
	return Data{
		ID:         id,
		Scenario:   scenario,
		Months:     len(tr) - 1,
		Seed:       tokenomics.Seed(p),
		Parameters: p,
		Trajectory: tr,
	}
}

func WriteJSON(w io.Writer, d Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
