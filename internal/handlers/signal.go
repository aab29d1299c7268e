package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fencetrade/signalboard/internal/logger"
	"github.com/fencetrade/signalboard/internal/metrics"
	"github.com/fencetrade/signalboard/internal/models"
	"github.com/fencetrade/signalboard/internal/services"
	"github.com/fencetrade/signalboard/internal/stats"
	"github.com/gin-gonic/gin"
)

// SignalHandler handles signal ingestion and dashboard reads
type SignalHandler struct {
	signalService *services.SignalService
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(signalService *services.SignalService) *SignalHandler {
	return &SignalHandler{signalService: signalService}
}

// HandleSignalUpdate handles incoming signal updates from the checker
func (h *SignalHandler) HandleSignalUpdate(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.WithComponent("signals").WithError(err).Error("failed to read request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var update models.SignalUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		logger.WithComponent("signals").WithError(err).
			WithField("body", string(body)).
			Warn("malformed signal payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signal format"})
		return
	}

	logger.WithComponent("signals").WithFields(logger.Fields{
		"bytes":   len(body),
		"payload": string(body),
	}).Info("received signal update")

	result, err := h.signalService.Ingest(&update)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPayload) {
			metrics.SignalsIngested.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signal format"})
			return
		}
		metrics.SignalsIngested.WithLabelValues("error").Inc()
		logger.WithComponent("signals").WithError(err).Error("failed to persist signal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save signal"})
		return
	}

	if result.Updated {
		metrics.SignalsIngested.WithLabelValues("updated").Inc()
	} else {
		metrics.SignalsIngested.WithLabelValues("created").Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      result.ID,
		"updated": result.Updated,
	})
}

// GetSignals returns all signals, most recently written first
func (h *SignalHandler) GetSignals(c *gin.Context) {
	signals, err := h.signalService.ListSignals()
	if err != nil {
		logger.WithComponent("signals").WithError(err).Error("failed to list signals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve signals"})
		return
	}
	c.JSON(http.StatusOK, signals)
}

// GetStats returns the aggregate performance snapshot, optionally
// filtered to one channel via ?channel=
func (h *SignalHandler) GetStats(c *gin.Context) {
	signals, err := h.signalService.ListSignals()
	if err != nil {
		logger.WithComponent("signals").WithError(err).Error("failed to list signals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve signals"})
		return
	}
	c.JSON(http.StatusOK, stats.Compute(signals, c.Query("channel")))
}
