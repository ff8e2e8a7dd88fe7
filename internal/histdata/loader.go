// Package histdata loads the historical market data files the original
// data pipeline produces: one JSON file per ticker under a category
// directory, plus an optional dated news-events file.
package histdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pastgame/past-trading/internal/logger"
)

// OHLC is one trading day of a series.
type OHLC struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Series is the full history for one ticker.
type Series struct {
	Ticker    string `json:"ticker"`
	Bars      []OHLC `json:"ohlc"`
	startDate time.Time
}

// StartDate is the date of the first bar, or zero if unparseable.
func (s *Series) StartDate() time.Time {
	return s.startDate
}

// Len returns the number of trading days in the series.
func (s *Series) Len() int {
	return len(s.Bars)
}

// Bar returns the bar at trading-day index i.
func (s *Series) Bar(i int) (OHLC, bool) {
	if i < 0 || i >= len(s.Bars) {
		return OHLC{}, false
	}
	return s.Bars[i], true
}

// DatedEvent is a real-world headline pinned to a simulated day.
type DatedEvent struct {
	Day    int     `json:"day"`
	Text   string  `json:"text"`
	Effect float64 `json:"effect"`
}

// Loader reads and caches series files. A missing file is a normal
// condition (the market falls back to synthetic prices) and is reported
// through the ok return, never as an error. Failures are logged once per
// ticker.
type Loader struct {
	dir string
	log *logger.Logger

	mu     sync.Mutex
	cache  map[string]*Series
	missed map[string]bool
	events []DatedEvent
}

func NewLoader(dir string, log *logger.Logger) *Loader {
	return &Loader{
		dir:    dir,
		log:    log,
		cache:  make(map[string]*Series),
		missed: make(map[string]bool),
	}
}

// Series returns the historical series for a ticker, loading and caching
// it on first use. ok is false when no usable data exists.
func (l *Loader) Series(category, ticker string) (*Series, bool) {
	key := category + "/" + ticker

	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.cache[key]; ok {
		return s, true
	}
	if l.missed[key] {
		return nil, false
	}

	s, err := l.readSeries(category, ticker)
	if err != nil {
		l.missed[key] = true
		l.log.Warn("historical data unavailable, using synthetic prices", "ticker", ticker, "error", err)
		return nil, false
	}

	l.cache[key] = s
	return s, true
}

func (l *Loader) readSeries(category, ticker string) (*Series, error) {
	path := filepath.Join(l.dir, category, ticker+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series: %w", err)
	}

	s := &Series{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse series: %w", err)
	}
	if len(s.Bars) == 0 {
		return nil, fmt.Errorf("series is empty")
	}
	if s.Ticker == "" {
		s.Ticker = ticker
	}
	if t, err := time.Parse("2006-01-02", s.Bars[0].Date); err == nil {
		s.startDate = t
	}
	return s, nil
}

// NewsEvents loads the dated headline file once; missing is fine.
func (l *Loader) NewsEvents() []DatedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.events != nil {
		return l.events
	}

	l.events = []DatedEvent{}
	data, err := os.ReadFile(filepath.Join(l.dir, "news_events.json"))
	if err != nil {
		return l.events
	}

	var parsed struct {
		MarketEvents []DatedEvent `json:"market_events"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		l.log.Warn("news events file unreadable", "error", err)
		return l.events
	}
	l.events = parsed.MarketEvents
	return l.events
}

// EventsForDay returns dated headlines landing on the given day.
func (l *Loader) EventsForDay(day int) []DatedEvent {
	var out []DatedEvent
	for _, e := range l.NewsEvents() {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

// UpcomingEvents returns headlines within (day, day+ahead]. Used by the
// almanac intel unlock.
func (l *Loader) UpcomingEvents(day, ahead int) []DatedEvent {
	var out []DatedEvent
	for _, e := range l.NewsEvents() {
		if e.Day > day && e.Day <= day+ahead {
			out = append(out, e)
		}
	}
	return out
}

// ClearCache drops everything; a new run reloads from disk.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*Series)
	l.missed = make(map[string]bool)
	l.events = nil
}
