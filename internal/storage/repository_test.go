package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewRepository(db)
}

type fakeState struct {
	PP   float64 `json:"pp"`
	Runs int     `json:"runs"`
}

func TestProfileRoundTrip(t *testing.T) {
	repo := newRepo(t)

	var loaded fakeState
	found, err := repo.LoadProfile(&loaded)
	require.NoError(t, err)
	assert.False(t, found, "fresh database has no profile")

	require.NoError(t, repo.SaveProfile(&fakeState{PP: 12.5, Runs: 3}))

	found, err = repo.LoadProfile(&loaded)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 12.5, loaded.PP)
	assert.Equal(t, 3, loaded.Runs)

	// Second save updates the same row instead of adding one.
	require.NoError(t, repo.SaveProfile(&fakeState{PP: 20, Runs: 4}))
	found, err = repo.LoadProfile(&loaded)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 20.0, loaded.PP)
}

func TestRunsAndTrades(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.SaveRun(&RunRecord{RunNumber: 1, Mode: "stocks", Outcome: "fired", PP: 0.5}))
	require.NoError(t, repo.SaveRun(&RunRecord{RunNumber: 2, Mode: "crypto", Outcome: "arrested", PP: 4}))

	runs, err := repo.GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	require.NoError(t, repo.SaveTrades([]TradeRecord{
		{RunNumber: 2, Day: 1, Action: "BUY", Ticker: "BTC", Quantity: 0.5, Price: 40_000},
		{RunNumber: 2, Day: 9, Action: "SELL", Ticker: "BTC", Quantity: 0.5, Price: 44_000, PnL: 2000},
	}))
	require.NoError(t, repo.SaveTrades(nil))

	trades, err := repo.GetRunTrades(2)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "BUY", trades[0].Action)
	assert.Equal(t, 2000.0, trades[1].PnL)

	trades, err = repo.GetRunTrades(1)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestLeaderboardKeepsTopTen(t *testing.T) {
	repo := newRepo(t)

	for i := 1; i <= 15; i++ {
		require.NoError(t, repo.SubmitScore(&LeaderboardEntry{
			Category:  "net_worth",
			RunNumber: i,
			Mode:      "stocks",
			Score:     float64(i * 1000),
		}))
	}

	entries, err := repo.GetLeaderboard("net_worth")
	require.NoError(t, err)
	require.Len(t, entries, 10)
	assert.Equal(t, 15_000.0, entries[0].Score)
	assert.Equal(t, 6_000.0, entries[9].Score)
}

func TestLeaderboardCategoriesIsolated(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.SubmitScore(&LeaderboardEntry{Category: "pp", Score: 10}))
	require.NoError(t, repo.SubmitScore(&LeaderboardEntry{Category: "sharpe", Score: 1.5}))

	pp, err := repo.GetLeaderboard("pp")
	require.NoError(t, err)
	require.Len(t, pp, 1)
	assert.Equal(t, 10.0, pp[0].Score)

	empty, err := repo.GetLeaderboard("nope")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
