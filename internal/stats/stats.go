// Package stats computes the dashboard's performance numbers from a
// signal collection. Everything here is a pure function of its input:
// no I/O, no retained state, recomputed from scratch on every call.
package stats

import (
	"math"

	"github.com/fencetrade/signalboard/internal/models"
)

// TPLevels is the number of take-profit checkpoints a signal can reach.
const TPLevels = 4

// TPDistribution breaks down how far signals got toward their targets.
type TPDistribution struct {
	// Cumulative[i] counts signals with tp_level >= i+1. A signal at
	// TP3 has necessarily passed TP1 and TP2, so the counts are
	// monotonically non-increasing by level.
	Cumulative [TPLevels]int `json:"cumulative"`
	// Exact[i] counts signals whose highest level is exactly i+1,
	// except the last bucket which absorbs everything at TP4 and
	// beyond. Used for proportional (pie) display.
	Exact [TPLevels]int `json:"exact"`
}

// Snapshot is the aggregate view rendered by the performance dashboard.
type Snapshot struct {
	TotalSignals int            `json:"total_signals"`
	Wins         int            `json:"wins"`
	Losses       int            `json:"losses"`
	WinRate      float64        `json:"win_rate"`
	TotalPips    float64        `json:"total_pips"`
	ActiveTrades int            `json:"active_trades"`
	TPHits       TPDistribution `json:"tp_hits"`
}

// Compute aggregates the given signals into a snapshot. When channel is
// non-empty and not "All", only signals from that channel (by display
// name, missing names counting as "Unknown") are considered.
//
// Win rate is wins/(wins+losses) over closed signals only, where a win
// is TP_HIT and a loss is SL_HIT; BREAKEVEN and CLOSED stay out of the
// denominator. Total pips and the TP distribution span all in-scope
// signals regardless of status.
func Compute(signals []models.Signal, channel string) Snapshot {
	var snap Snapshot

	for i := range signals {
		s := &signals[i]
		if !inChannel(s, channel) {
			continue
		}

		snap.TotalSignals++
		snap.TotalPips += s.Pips

		if s.Closed() {
			switch s.Status {
			case models.StatusTPHit:
				snap.Wins++
			case models.StatusSLHit:
				snap.Losses++
			}
		} else {
			snap.ActiveTrades++
		}

		for level := 1; level <= TPLevels; level++ {
			if s.TPLevel >= level {
				snap.TPHits.Cumulative[level-1]++
			}
		}
		switch {
		case s.TPLevel >= TPLevels:
			snap.TPHits.Exact[TPLevels-1]++
		case s.TPLevel >= 1:
			snap.TPHits.Exact[s.TPLevel-1]++
		}
	}

	if closed := snap.Wins + snap.Losses; closed > 0 {
		// Percentage with one decimal, matching the dashboard cards.
		snap.WinRate = math.Round(float64(snap.Wins)/float64(closed)*1000) / 10
	}

	return snap
}

func inChannel(s *models.Signal, channel string) bool {
	if channel == "" || channel == "All" {
		return true
	}
	name := s.ChannelName
	if name == "" {
		name = "Unknown"
	}
	return name == channel
}
