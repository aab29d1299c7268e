package handlers

import (
	"errors"
	"net/http"

	"github.com/fencetrade/signalboard/internal/logger"
	"github.com/fencetrade/signalboard/internal/metrics"
	"github.com/fencetrade/signalboard/internal/models"
	"github.com/fencetrade/signalboard/internal/services"
	"github.com/gin-gonic/gin"
)

// VerifyHandler handles membership verification submissions
type VerifyHandler struct {
	verificationService *services.VerificationService
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(verificationService *services.VerificationService) *VerifyHandler {
	return &VerifyHandler{verificationService: verificationService}
}

// HandleVerify handles a verification form submission
func (h *VerifyHandler) HandleVerify(c *gin.Context) {
	var sub models.VerificationSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		metrics.VerificationRequests.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.verificationService.Submit(&sub)
	switch {
	case err == nil:
		metrics.VerificationRequests.WithLabelValues("accepted").Inc()
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, services.ErrInvalidPayload):
		metrics.VerificationRequests.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	case errors.Is(err, services.ErrDuplicatePending):
		metrics.VerificationRequests.WithLabelValues("duplicate").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "A request for this email is already pending"})
	case errors.Is(err, services.ErrAlreadyVerified):
		metrics.VerificationRequests.WithLabelValues("duplicate").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already verified"})
	default:
		metrics.VerificationRequests.WithLabelValues("error").Inc()
		logger.WithComponent("verification").WithError(err).Error("verification submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
