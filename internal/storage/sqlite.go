package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

const (
	dbFile = "runs.db"
	// Fixed width so created_at sorts as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// SQLiteStore keeps runs in <dir>/runs.db. The connection is opened by Init.
type SQLiteStore struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
	conn   *sqlx.DB
}

func NewSQLiteStore(dir string, logger *zap.Logger) *SQLiteStore {
	return &SQLiteStore{dir: dir, logger: logger, now: time.Now}
}

type runRow struct {
	ID         string `db:"id"`
	Scenario   string `db:"scenario"`
	CreatedAt  string `db:"created_at"`
	Months     int    `db:"months"`
	Seed       int64  `db:"seed"`
	Parameters string `db:"params_json"`
	Final      string `db:"final_json"`
}

func (s *SQLiteStore) Init() error {
	if s.conn != nil {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(s.dir, dbFile)
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	s.conn = conn
	if err := s.migrate(); err != nil {
		conn.Close()
		s.conn = nil
		return fmt.Errorf("migrate: %w", err)
	}
	s.logger.Debug("run database ready", zap.String("path", path))
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		created_at TEXT NOT NULL,
		months INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		final_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_months (
		run_id TEXT NOT NULL,
		month INTEGER NOT NULL,
		metrics_json TEXT NOT NULL,
		PRIMARY KEY (run_id, month)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLiteStore) db() (*sqlx.DB, error) {
	if s.conn == nil {
		if err := s.Init(); err != nil {
			return nil, err
		}
	}
	return s.conn, nil
}

func (s *SQLiteStore) Save(run *Run) (string, error) {
	conn, err := s.db()
	if err != nil {
		return "", err
	}
	meta := newMetadata(run, s.now())

	paramsJSON, err := json.Marshal(meta.Parameters)
	if err != nil {
		return "", err
	}
	finalJSON, err := json.Marshal(meta.Final)
	if err != nil {
		return "", err
	}

	tx, err := conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, scenario, created_at, months, seed, params_json, final_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Scenario, meta.Timestamp.UTC().Format(timeLayout),
		meta.Months, meta.Seed, string(paramsJSON), string(finalJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run %s: %w", meta.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO run_months (run_id, month, metrics_json) VALUES (?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for month, m := range run.Trajectory {
		data, _ := json.Marshal(m)
		if _, err := stmt.Exec(meta.ID, month, string(data)); err != nil {
			return "", fmt.Errorf("insert month %d: %w", month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	s.logger.Debug("run saved", zap.String("id", meta.ID), zap.Int("months", meta.Months))
	return meta.ID, nil
}

func (r runRow) metadata() (*RunMetadata, error) {
	ts, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("run %s timestamp: %w", r.ID, err)
	}
	meta := &RunMetadata{
		ID:        r.ID,
		Scenario:  r.Scenario,
		Timestamp: ts,
		Months:    r.Months,
		Seed:      r.Seed,
	}
	if err := json.Unmarshal([]byte(r.Parameters), &meta.Parameters); err != nil {
		return nil, fmt.Errorf("run %s parameters: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Final), &meta.Final); err != nil {
		return nil, fmt.Errorf("run %s final metrics: %w", r.ID, err)
	}
	return meta, nil
}

func (s *SQLiteStore) List() ([]RunMetadata, error) {
	conn, err := s.db()
	if err != nil {
		return nil, err
	}
	var rows []runRow
	if err := conn.Select(&rows, `SELECT * FROM runs ORDER BY created_at, id`); err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(rows))
	for _, r := range rows {
		meta, err := r.metadata()
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	sortRuns(runs)
	return runs, nil
}

func (s *SQLiteStore) Load(runID string) (*RunMetadata, error) {
	conn, err := s.db()
	if err != nil {
		return nil, err
	}
	var r runRow
	err = conn.Get(&r, `SELECT * FROM runs WHERE id = ?`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return r.metadata()
}

func (s *SQLiteStore) LoadTrajectory(runID string) (tokenomics.Trajectory, error) {
	if _, err := s.Load(runID); err != nil {
		return nil, err
	}
	var rows []string
	err := s.conn.Select(&rows, `SELECT metrics_json FROM run_months WHERE run_id = ? ORDER BY month`, runID)
	if err != nil {
		return nil, err
	}

	tr := make(tokenomics.Trajectory, 0, len(rows))
	for i, data := range rows {
		var m tokenomics.Metrics
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, fmt.Errorf("run %s month %d: %w", runID, i, err)
		}
		tr = append(tr, m)
	}
	return tr, nil
}
