package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const leaderboardSize = 10

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Profile

// LoadProfile deserializes the saved progression state into out. ok is
// false on first launch when no profile exists yet.
func (r *Repository) LoadProfile(out any) (bool, error) {
	var p Profile
	err := r.db.Order("id").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	if err := json.Unmarshal([]byte(p.StateJSON), out); err != nil {
		return false, fmt.Errorf("decode profile state: %w", err)
	}
	return true, nil
}

// SaveProfile upserts the single profile row.
func (r *Repository) SaveProfile(state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode profile state: %w", err)
	}

	var p Profile
	err = r.db.Order("id").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&Profile{StateJSON: string(data)}).Error
	}
	if err != nil {
		return fmt.Errorf("load profile for save: %w", err)
	}
	p.StateJSON = string(data)
	return r.db.Save(&p).Error
}

// Runs

func (r *Repository) SaveRun(run *RunRecord) error {
	return r.db.Create(run).Error
}

func (r *Repository) GetRecentRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// Trades

func (r *Repository) SaveTrades(trades []TradeRecord) error {
	if len(trades) == 0 {
		return nil
	}
	return r.db.Create(&trades).Error
}

func (r *Repository) GetRunTrades(runNumber int) ([]TradeRecord, error) {
	var trades []TradeRecord
	err := r.db.Where("run_number = ?", runNumber).Order("id").Find(&trades).Error
	return trades, err
}

// Leaderboard

// SubmitScore records a score and trims the category to its top entries.
func (r *Repository) SubmitScore(entry *LeaderboardEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return err
	}

	var keep []uint
	err := r.db.Model(&LeaderboardEntry{}).
		Where("category = ?", entry.Category).
		Order("score DESC, created_at ASC").
		Limit(leaderboardSize).
		Pluck("id", &keep).Error
	if err != nil {
		return err
	}

	return r.db.Where("category = ? AND id NOT IN ?", entry.Category, keep).
		Delete(&LeaderboardEntry{}).Error
}

func (r *Repository) GetLeaderboard(category string) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := r.db.Where("category = ?", category).
		Order("score DESC, created_at ASC").
		Limit(leaderboardSize).
		Find(&entries).Error
	return entries, err
}
