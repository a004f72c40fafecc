// Package storage keeps simulation runs: a metadata record plus the monthly
// trajectory. Two backends exist, a directory tree and a SQLite database.
package storage

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

var ErrRunNotFound = errors.New("run not found")

const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
)

type Store interface {
	Init() error
	Save(run *Run) (string, error)
	List() ([]RunMetadata, error)
	Load(runID string) (*RunMetadata, error)
	LoadTrajectory(runID string) (tokenomics.Trajectory, error)
	Close() error
}

type RunMetadata struct {
	ID         string                `json:"id"`
	Scenario   string                `json:"scenario"`
	Timestamp  time.Time             `json:"timestamp"`
	Months     int                   `json:"months"`
	Seed       int64                 `json:"seed"`
	Parameters tokenomics.Parameters `json:"parameters"`
	Final      tokenomics.Metrics    `json:"final"`
}

// Run is a finished simulation ready to be stored.
type Run struct {
	Scenario   string
	Months     int
	Parameters tokenomics.Parameters
	Trajectory tokenomics.Trajectory
}

// Open returns the store for backend rooted at path. A nil logger is
// replaced by a no-op one.
func Open(backend, path string, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch backend {
	case BackendDir, "":
		return NewDirStore(path, logger), nil
	case BackendSQLite:
		return NewSQLiteStore(path, logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

func newRunID(scenario string) string {
	if scenario == "" {
		scenario = "custom"
	}
	return fmt.Sprintf("%s_%s", scenario, uuid.NewString()[:8])
}

func newMetadata(run *Run, now time.Time) RunMetadata {
	return RunMetadata{
		ID:         newRunID(run.Scenario),
		Scenario:   run.Scenario,
		Timestamp:  now,
		Months:     run.Months,
		Seed:       tokenomics.Seed(run.Parameters),
		Parameters: run.Parameters,
		Final:      run.Trajectory.Final(),
	}
}

func sortRuns(runs []RunMetadata) {
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
		return runs[i].ID < runs[j].ID
	})
}
