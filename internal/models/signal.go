package models

import (
	"time"
)

// Signal statuses as reported by the upstream signal checker. The store
// does not enforce a transition graph; the checker is authoritative.
const (
	StatusTPHit     = "TP_HIT"
	StatusSLHit     = "SL_HIT"
	StatusClosed    = "CLOSED"
	StatusBreakeven = "BREAKEVEN"
)

// Signal represents one trade-signal lifecycle record. A signal is
// created on first ingestion and updated in place on every later call
// that matches the same (symbol, channel_id, open_time) key. The
// composite unique index closes the duplicate-insert race between
// concurrent ingestion calls for the same new key.
type Signal struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Symbol      string    `json:"symbol" gorm:"not null;uniqueIndex:idx_signal_key"`
	Type        string    `json:"type"` // LONG, SHORT, BUY, SELL
	Status      string    `json:"status" gorm:"not null"`
	Pips        float64   `json:"pips" gorm:"default:0"`
	TPLevel     int       `json:"tp_level" gorm:"column:tp_level;default:0"`
	ChannelID   *int64    `json:"channel_id" gorm:"uniqueIndex:idx_signal_key"`
	ChannelName string    `json:"channel_name" gorm:"default:'Unknown'"`
	RiskPips    float64   `json:"risk_pips" gorm:"default:0"`
	RewardPips  float64   `json:"reward_pips" gorm:"default:0"`
	RRRatio     float64   `json:"rr_ratio" gorm:"column:rr_ratio;default:0"`
	Profit      float64   `json:"profit" gorm:"default:0"`
	// OpenTime is kept as the raw ISO-8601 string the producer sent.
	// Upstream emits inconsistent timezone suffixes (Z vs +00:00) for
	// the same open time, so dedup matches on the first 19 characters
	// when an exact match fails.
	OpenTime  string    `json:"open_time" gorm:"uniqueIndex:idx_signal_key"`
	Timestamp time.Time `json:"timestamp" gorm:"autoUpdateTime"`
}

// Closed reports whether the signal has reached a terminal status.
func (s *Signal) Closed() bool {
	switch s.Status {
	case StatusTPHit, StatusSLHit, StatusClosed, StatusBreakeven:
		return true
	}
	return false
}

// SignalUpdate is the ingestion payload pushed by the signal checker.
// Symbol and Status are mandatory; everything else defaults to zero,
// "Unknown" for the channel name, or null for the channel id.
type SignalUpdate struct {
	Symbol      string  `json:"symbol"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Pips        float64 `json:"pips"`
	TPLevel     int     `json:"tp_level"`
	ChannelID   *int64  `json:"channel_id"`
	ChannelName string  `json:"channel_name"`
	RiskPips    float64 `json:"risk_pips"`
	RewardPips  float64 `json:"reward_pips"`
	RRRatio     float64 `json:"rr_ratio"`
	Profit      float64 `json:"profit"`
	OpenTime    string  `json:"open_time"`
}
