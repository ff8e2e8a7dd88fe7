// Package news keeps the in-game headline feed: market event coverage,
// satirical filler, regulator warnings and optional AI color commentary.
package news

import (
	"math/rand"

	"github.com/pastgame/past-trading/internal/game"
)

// Item kinds.
const (
	KindEvent      = "event"
	KindSatire     = "satire"
	KindRegulator  = "regulator"
	KindTrade      = "trade"
	KindCommentary = "commentary"
)

const feedLimit = 100

// Item is one feed entry.
type Item struct {
	Day  int    `json:"day"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Feed is a bounded headline buffer, newest last.
type Feed struct {
	rng   *rand.Rand
	items []Item
}

func NewFeed(rng *rand.Rand) *Feed {
	return &Feed{rng: rng}
}

// Add appends an item, dropping the oldest past the cap.
func (f *Feed) Add(day int, kind, text string) {
	f.items = append(f.items, Item{Day: day, Kind: kind, Text: text})
	if len(f.items) > feedLimit {
		f.items = f.items[len(f.items)-feedLimit:]
	}
}

// MaybeSatire rolls the daily chance of a satirical filler headline.
func (f *Feed) MaybeSatire(day int) {
	if f.rng.Float64() < 0.04 {
		f.Add(day, KindSatire, game.SatiricalNews[f.rng.Intn(len(game.SatiricalNews))])
	}
}

// Items returns the newest n entries, newest first.
func (f *Feed) Items(n int) []Item {
	if n <= 0 || n > len(f.items) {
		n = len(f.items)
	}
	out := make([]Item, n)
	for i := 0; i < n; i++ {
		out[i] = f.items[len(f.items)-1-i]
	}
	return out
}
