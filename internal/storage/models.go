package storage

import "time"

// Profile is the single-row persistent meta-progression document. The
// progression state is stored as a JSON blob so the unlock tree can
// evolve without schema migrations.
type Profile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StateJSON string `gorm:"type:text;not null" json:"state_json"`
}

// RunRecord is one finished run.
type RunRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RunNumber     int     `gorm:"index" json:"run_number"`
	Mode          string  `gorm:"not null" json:"mode"`
	Outcome       string  `gorm:"not null" json:"outcome"` // time_up, completed, arrested, fired, bankrupt
	Days          int     `json:"days"`
	FinalNetWorth float64 `json:"final_net_worth"`
	MaxNetWorth   float64 `json:"max_net_worth"`
	PP            float64 `gorm:"column:pp" json:"pp"`
	Trades        int     `json:"trades"`
	QuarterLevel  int     `json:"quarter_level"`
	Sharpe        float64 `json:"sharpe"`
	Seed          int64   `json:"seed"`
}

// TradeRecord logs every executed trade for the history view.
type TradeRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RunNumber int     `gorm:"index" json:"run_number"`
	Day       int     `json:"day"`
	Action    string  `gorm:"not null" json:"action"` // BUY, SHORT, SELL
	Ticker    string  `gorm:"index;not null" json:"ticker"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Fee       float64 `json:"fee"`
	PnL       float64 `gorm:"column:pnl" json:"pnl"`
}

// LeaderboardEntry is a local high-score row, one category per metric.
type LeaderboardEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Category  string  `gorm:"index;not null" json:"category"` // net_worth, pp, sharpe
	RunNumber int     `json:"run_number"`
	Mode      string  `json:"mode"`
	Score     float64 `gorm:"not null" json:"score"`
}
