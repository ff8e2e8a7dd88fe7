package histdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastgame/past-trading/internal/logger"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSeriesLoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stocks", "AAA.json"), `{
		"ticker": "AAA",
		"ohlc": [
			{"date": "2008-01-02", "open": 10, "high": 11, "low": 9.5, "close": 10.5},
			{"date": "2008-01-03", "open": 10.5, "high": 12, "low": 10, "close": 11.8}
		]
	}`)

	l := NewLoader(dir, logger.Discard())

	s, ok := l.Series("stocks", "AAA")
	require.True(t, ok)
	assert.Equal(t, "AAA", s.Ticker)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2008, s.StartDate().Year())

	bar, ok := s.Bar(1)
	require.True(t, ok)
	assert.Equal(t, 11.8, bar.Close)

	_, ok = s.Bar(2)
	assert.False(t, ok)

	// Second call hits the cache and returns the same series.
	s2, ok := l.Series("stocks", "AAA")
	require.True(t, ok)
	assert.Same(t, s, s2)
}

func TestMissingSeriesIsNotAnError(t *testing.T) {
	l := NewLoader(t.TempDir(), logger.Discard())

	_, ok := l.Series("stocks", "NOPE")
	assert.False(t, ok)

	// The miss is remembered; repeated lookups stay cheap and quiet.
	_, ok = l.Series("stocks", "NOPE")
	assert.False(t, ok)
}

func TestMalformedSeriesRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stocks", "BAD.json"), `{not json`)
	writeFile(t, filepath.Join(dir, "stocks", "EMPTY.json"), `{"ticker": "EMPTY", "ohlc": []}`)

	l := NewLoader(dir, logger.Discard())

	_, ok := l.Series("stocks", "BAD")
	assert.False(t, ok)
	_, ok = l.Series("stocks", "EMPTY")
	assert.False(t, ok)
}

func TestTickerDefaultsFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "crypto", "BTC.json"), `{
		"ohlc": [{"date": "2015-06-01", "open": 1, "high": 2, "low": 1, "close": 1.5}]
	}`)

	l := NewLoader(dir, logger.Discard())
	s, ok := l.Series("crypto", "BTC")
	require.True(t, ok)
	assert.Equal(t, "BTC", s.Ticker)
}

func TestNewsEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "news_events.json"), `{
		"market_events": [
			{"day": 10, "text": "Bank collapses", "effect": -0.05},
			{"day": 12, "text": "Bailout announced", "effect": 0.03},
			{"day": 40, "text": "Rally continues", "effect": 0.01}
		]
	}`)

	l := NewLoader(dir, logger.Discard())

	assert.Len(t, l.NewsEvents(), 3)

	forDay := l.EventsForDay(10)
	require.Len(t, forDay, 1)
	assert.Equal(t, "Bank collapses", forDay[0].Text)

	assert.Empty(t, l.EventsForDay(11))

	upcoming := l.UpcomingEvents(9, 3)
	require.Len(t, upcoming, 2)
	assert.Equal(t, 10, upcoming[0].Day)
	assert.Equal(t, 12, upcoming[1].Day)
}

func TestMissingNewsFileYieldsEmpty(t *testing.T) {
	l := NewLoader(t.TempDir(), logger.Discard())
	assert.Empty(t, l.NewsEvents())
}

func TestClearCacheReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stocks", "AAA.json")
	writeFile(t, path, `{"ticker": "AAA", "ohlc": [{"date": "2008-01-02", "open": 1, "high": 1, "low": 1, "close": 1}]}`)

	l := NewLoader(dir, logger.Discard())
	s1, ok := l.Series("stocks", "AAA")
	require.True(t, ok)

	l.ClearCache()
	s2, ok := l.Series("stocks", "AAA")
	require.True(t, ok)
	assert.NotSame(t, s1, s2)
}
