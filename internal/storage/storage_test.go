package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

func newRun(scenario string, months int) *Run {
	p := tokenomics.DefaultParameters()
	return &Run{
		Scenario:   scenario,
		Months:     months,
		Parameters: p,
		Trajectory: tokenomics.Simulate(p, months),
	}
}

func openStores(t *testing.T) map[string]Store {
	stores := map[string]Store{}
	for _, backend := range []string{BackendDir, BackendSQLite} {
		st, err := Open(backend, filepath.Join(t.TempDir(), backend), zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, st.Init())
		t.Cleanup(func() { st.Close() })
		stores[backend] = st
	}
	return stores
}

func TestSaveLoad(t *testing.T) {
	for backend, st := range openStores(t) {
		t.Run(backend, func(t *testing.T) {
			require := require.New(t)

			run := newRun("balancedAscent", 12)
			id, err := st.Save(run)
			require.NoError(err)
			require.Contains(id, "balancedAscent_")

			meta, err := st.Load(id)
			require.NoError(err)
			require.Equal(id, meta.ID)
			require.Equal("balancedAscent", meta.Scenario)
			require.Equal(12, meta.Months)
			require.Equal(int64(267), meta.Seed)
			require.Equal(run.Parameters, meta.Parameters)
			require.Equal(run.Trajectory.Final().Values(), meta.Final.Values())
			require.WithinDuration(time.Now(), meta.Timestamp, time.Minute)

			tr, err := st.LoadTrajectory(id)
			require.NoError(err)
			require.Len(tr, 13)
			for i := range tr {
				require.Equal(run.Trajectory[i].Values(), tr[i].Values(), "month %d", i)
			}
		})
	}
}

func TestList(t *testing.T) {
	for backend, st := range openStores(t) {
		t.Run(backend, func(t *testing.T) {
			require := require.New(t)

			runs, err := st.List()
			require.NoError(err)
			require.Empty(runs)

			first, err := st.Save(newRun("cryptoWinter", 3))
			require.NoError(err)
			time.Sleep(2 * time.Millisecond)
			second, err := st.Save(newRun("", 6))
			require.NoError(err)
			require.Contains(second, "custom_")

			runs, err = st.List()
			require.NoError(err)
			require.Len(runs, 2)
			require.Equal(first, runs[0].ID)
			require.Equal(second, runs[1].ID)
		})
	}
}

func TestRunNotFound(t *testing.T) {
	for backend, st := range openStores(t) {
		t.Run(backend, func(t *testing.T) {
			_, err := st.Load("missing_1234")
			require.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)

			_, err = st.LoadTrajectory("missing_1234")
			require.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("postgres", t.TempDir(), nil)
	require.ErrorContains(t, err, "unknown store backend: postgres")
}

func TestDirListSkipsForeignEntries(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	st := NewDirStore(dir, zap.NewNop())
	require.NoError(st.Init())
	require.NoError(os.Mkdir(filepath.Join(dir, "notes"), 0755))
	require.NoError(os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0644))

	_, err := st.Save(newRun("computeRevolution", 2))
	require.NoError(err)

	runs, err := st.List()
	require.NoError(err)
	require.Len(runs, 1)
}

func TestDirListMissingBase(t *testing.T) {
	st := NewDirStore(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestSQLiteReopen(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	st := NewSQLiteStore(dir, zap.NewNop())
	require.NoError(st.Init())
	id, err := st.Save(newRun("providerGoldRush", 4))
	require.NoError(err)
	require.NoError(st.Close())

	again := NewSQLiteStore(dir, zap.NewNop())
	defer again.Close()
	meta, err := again.Load(id)
	require.NoError(err)
	require.Equal("providerGoldRush", meta.Scenario)
}
