package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveRun(Run{Episode: 1, EpisodeID: "sands", Duration: 90})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(0, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		Episode: 4, EpisodeID: "recurrence", Outcome: OutcomeFinished,
		Duration: 75.5, Ticks: 4530, Tasks: 0, Deaths: 2, Seed: 7, Difficulty: "hard",
	})
	require.NoError(t, err)

	got, err := store.RunByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Episode)
	assert.Equal(t, "recurrence", got.EpisodeID)
	assert.Equal(t, OutcomeFinished, got.Outcome)
	assert.Equal(t, 75.5, got.Duration)
	assert.Equal(t, int64(4530), got.Ticks)
	assert.Equal(t, 2, got.Deaths)
	assert.Equal(t, int64(7), got.Seed)
	assert.Equal(t, "hard", got.Difficulty)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStoreDefaults(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Episode: 1, EpisodeID: "sands"})
	require.NoError(t, err)

	got, err := store.RunByID(id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinished, got.Outcome)
	assert.Equal(t, "normal", got.Difficulty)
}

func TestStoreMissingRun(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{Episode: 1, EpisodeID: "sands", Duration: 120},
		{Episode: 1, EpisodeID: "sands", Duration: 80, Deaths: 1},
		{Episode: 1, EpisodeID: "sands", Duration: 80},
		{Episode: 1, EpisodeID: "sands", Duration: 10, Outcome: OutcomeAbandoned},
		{Episode: 2, EpisodeID: "weaver", Duration: 5},
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	best, err := store.BestRuns(1, 10)
	require.NoError(t, err)
	require.Len(t, best, 3)
	assert.Equal(t, 80.0, best[0].Duration)
	assert.Zero(t, best[0].Deaths, "ties break on deaths")
	assert.Equal(t, 1, best[1].Deaths)
	assert.Equal(t, 120.0, best[2].Duration)

	best, err = store.BestRuns(1, 1)
	require.NoError(t, err)
	assert.Len(t, best, 1)
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		_, err := store.SaveRun(Run{Episode: 1 + i%2, EpisodeID: "x", Ticks: int64(i)})
		require.NoError(t, err)
	}

	all, err := store.RecentRuns(0, 3)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(5), all[0].Ticks, "newest first")

	ep1, err := store.RecentRuns(1, 0)
	require.NoError(t, err)
	assert.Len(t, ep1, 2)
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Episode: 1, EpisodeID: "sands"})
	store.SaveRun(Run{Episode: 1, EpisodeID: "sands"})
	store.SaveRun(Run{Episode: 2, EpisodeID: "weaver"})

	require.NoError(t, store.ClearRuns(1))

	ep1, err := store.RecentRuns(1, 10)
	require.NoError(t, err)
	assert.Empty(t, ep1)

	ep2, err := store.RecentRuns(2, 10)
	require.NoError(t, err)
	assert.Len(t, ep2, 1, "other episodes are untouched")
}

func TestStoreEpisodeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetEpisodeStats(3)
	require.NoError(t, err)
	assert.Zero(t, empty.Runs)
	assert.Zero(t, empty.BestTime)
	assert.True(t, empty.LastPlayed.IsZero())

	store.SaveRun(Run{Episode: 3, EpisodeID: "feast", Duration: 200, Deaths: 2})
	store.SaveRun(Run{Episode: 3, EpisodeID: "feast", Duration: 150, Deaths: 0})
	store.SaveRun(Run{Episode: 3, EpisodeID: "feast", Duration: 30, Deaths: 1, Outcome: OutcomeAbandoned})

	stats, err := store.GetEpisodeStats(3)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Runs)
	assert.Equal(t, 2, stats.Finished)
	assert.Equal(t, 150.0, stats.BestTime)
	assert.InDelta(t, 1.0, stats.AvgDeaths, 1e-9)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestStoreAllEpisodeStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Episode: 1, EpisodeID: "sands", Duration: 100})
	store.SaveRun(Run{Episode: 4, EpisodeID: "recurrence", Outcome: OutcomeAbandoned})

	all, err := store.GetAllEpisodeStats()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 100.0, all[1].BestTime)
	assert.Equal(t, 1, all[4].Runs)
	assert.Zero(t, all[4].Finished)
	assert.Zero(t, all[4].BestTime)
}
