package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fencetrade/signalboard/internal/logger"
	"github.com/fencetrade/signalboard/internal/models"
	"gorm.io/gorm"
)

// openTimePrefixLen covers the YYYY-MM-DDTHH:MM:SS portion of an
// ISO-8601 timestamp, discarding timezone suffix variance (Z vs
// +00:00) between updates for the same open time.
const openTimePrefixLen = 19

// SignalService handles signal ingestion and reads
type SignalService struct {
	db *gorm.DB
}

// NewSignalService creates a new signal service
func NewSignalService(db *gorm.DB) *SignalService {
	return &SignalService{db: db}
}

// IngestResult reports what a single ingestion call did.
type IngestResult struct {
	ID      uint
	Updated bool
}

// Ingest deduplicates an incoming signal update against the store and
// either updates the matched row in place or inserts a new one.
// Matching only applies when both open_time and channel_id are present:
// exact (symbol, channel_id, open_time) first, then a fallback on the
// 19-character timestamp prefix with the same symbol and channel.
// Exactly one row is created or updated per call.
func (s *SignalService) Ingest(update *models.SignalUpdate) (*IngestResult, error) {
	// The checker uppercases statuses before sending, but older sync
	// scripts did not; tolerate either spelling.
	update.Status = strings.ToUpper(strings.TrimSpace(update.Status))

	if update.Symbol == "" || update.Status == "" {
		return nil, fmt.Errorf("%w: symbol and status are required", ErrInvalidPayload)
	}

	if update.ChannelName == "" {
		update.ChannelName = "Unknown"
	}

	result := &IngestResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if update.OpenTime != "" && update.ChannelID != nil {
			existing, err := s.match(tx, update)
			if err != nil {
				return err
			}
			if existing != nil {
				if err := s.applyUpdate(tx, existing, update); err != nil {
					return err
				}
				result.ID = existing.ID
				result.Updated = true
				return nil
			}
		}

		row := models.Signal{
			Symbol:      update.Symbol,
			Type:        update.Type,
			Status:      update.Status,
			Pips:        update.Pips,
			TPLevel:     update.TPLevel,
			ChannelID:   update.ChannelID,
			ChannelName: update.ChannelName,
			RiskPips:    update.RiskPips,
			RewardPips:  update.RewardPips,
			RRRatio:     update.RRRatio,
			Profit:      update.Profit,
			OpenTime:    update.OpenTime,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert signal: %w", err)
		}
		result.ID = row.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// match finds the existing row for the update's dedup key, exact first,
// then by truncated open_time. Returns nil without error when no row
// matches.
func (s *SignalService) match(tx *gorm.DB, update *models.SignalUpdate) (*models.Signal, error) {
	var existing models.Signal

	err := tx.Where("symbol = ? AND channel_id = ? AND open_time = ?",
		update.Symbol, *update.ChannelID, update.OpenTime).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up signal: %w", err)
	}

	prefix := update.OpenTime
	if len(prefix) > openTimePrefixLen {
		prefix = prefix[:openTimePrefixLen]
	}
	err = tx.Where("symbol = ? AND channel_id = ? AND substr(open_time, 1, ?) = ?",
		update.Symbol, *update.ChannelID, openTimePrefixLen, prefix).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up signal: %w", err)
	}
	return nil, nil
}

// applyUpdate rewrites the mutable fields of a matched row. Identity
// fields (id, symbol, channel, open_time) are never touched, and
// tp_level never decreases across updates.
func (s *SignalService) applyUpdate(tx *gorm.DB, existing *models.Signal, update *models.SignalUpdate) error {
	tpLevel := update.TPLevel
	if existing.TPLevel > tpLevel {
		logger.WithComponent("signals").
			WithField("id", existing.ID).
			WithField("stored", existing.TPLevel).
			WithField("incoming", tpLevel).
			Debug("ignoring tp_level regression")
		tpLevel = existing.TPLevel
	}

	err := tx.Model(existing).Updates(map[string]interface{}{
		"status":      update.Status,
		"pips":        update.Pips,
		"tp_level":    tpLevel,
		"risk_pips":   update.RiskPips,
		"reward_pips": update.RewardPips,
		"rr_ratio":    update.RRRatio,
		"profit":      update.Profit,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update signal %d: %w", existing.ID, err)
	}
	return nil
}

// ListSignals returns all signals, most recently written first.
func (s *SignalService) ListSignals() ([]models.Signal, error) {
	var signals []models.Signal
	if err := s.db.Order("timestamp DESC").Find(&signals).Error; err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}
	return signals, nil
}
