package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

const (
	metadataFile = "metadata.json"
	monthsFile   = "months.csv"
)

// DirStore keeps one directory per run holding metadata.json and months.csv.
type DirStore struct {
	baseDir string
	logger  *zap.Logger
	now     func() time.Time
}

func NewDirStore(baseDir string, logger *zap.Logger) *DirStore {
	return &DirStore{baseDir: baseDir, logger: logger, now: time.Now}
}

func (s *DirStore) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *DirStore) Close() error { return nil }

func (s *DirStore) Save(run *Run) (string, error) {
	meta := newMetadata(run, s.now())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeMonths(filepath.Join(runDir, monthsFile), run.Trajectory); err != nil {
		return "", err
	}

	s.logger.Debug("run saved",
		zap.String("id", meta.ID),
		zap.String("dir", runDir),
		zap.Int("months", meta.Months))
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes a trajectory with a month column followed by every metric.
func WriteCSV(out io.Writer, tr tokenomics.Trajectory) error {
	w := csv.NewWriter(out)
	header := append([]string{"month"}, tokenomics.MetricNames()...)
	if err := w.Write(header); err != nil {
		return err
	}
	for month, m := range tr {
		row := []string{strconv.Itoa(month)}
		for _, v := range m.Values() {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeMonths(path string, tr tokenomics.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, tr)
}

func (s *DirStore) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run directory", zap.String("name", entry.Name()), zap.Error(err))
			continue
		}
		runs = append(runs, *meta)
	}
	sortRuns(runs)
	return runs, nil
}

func (s *DirStore) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *DirStore) LoadTrajectory(runID string) (tokenomics.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, monthsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return tokenomics.Trajectory{}, nil
	}

	tr := make(tokenomics.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", monthsFile, i+1, err)
			}
			vals = append(vals, v)
		}
		m, err := tokenomics.MetricsFromValues(vals)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", monthsFile, i+1, err)
		}
		tr = append(tr, m)
	}
	return tr, nil
}
