package services

import (
	"fmt"
	"strings"

	"github.com/fencetrade/signalboard/internal/logger"
	"github.com/fencetrade/signalboard/internal/models"
	"gorm.io/gorm"
)

// VerificationService handles website verification submissions
type VerificationService struct {
	db     *gorm.DB
	notify *NotifyService
}

// NewVerificationService creates a new verification service
func NewVerificationService(db *gorm.DB, notify *NotifyService) *VerificationService {
	return &VerificationService{db: db, notify: notify}
}

// Submit validates a verification submission, rejects duplicate emails
// and stores a new pending request.
//
// The webhook notification is deliberately not conditioned on the
// insert: if the store write fails the error is logged, the admin is
// still notified and the submitter still sees success, so a storage
// hiccup never silently drops a registration on the floor. The
// notification itself is best effort and failures are only logged.
func (s *VerificationService) Submit(sub *models.VerificationSubmission) error {
	name := sub.DisplayName()
	if name == "" || sub.Email == "" {
		return fmt.Errorf("%w: name and email are required", ErrInvalidPayload)
	}

	// Stored lowercased; the affiliate verifier matches portal rows
	// against the persisted form.
	email := strings.ToLower(strings.TrimSpace(sub.Email))
	if err := s.checkDuplicate(email); err != nil {
		return err
	}

	req := &models.PendingRequest{
		Name:            name,
		Country:         sub.Country,
		Email:           email,
		DiscordUsername: sub.DiscordUsername,
		Source:          "website",
		Status:          models.VerificationPending,
	}

	if err := s.db.Create(req).Error; err != nil {
		logger.WithComponent("verification").WithError(err).
			WithField("email", email).
			Error("failed to store verification request")
	}

	if err := s.notify.NotifyVerification(req); err != nil {
		logger.WithComponent("verification").WithError(err).
			WithField("email", email).
			Warn("webhook notification failed")
	}

	return nil
}

// checkDuplicate rejects emails that are already pending or already
// belong to a verified affiliate, compared case-insensitively.
func (s *VerificationService) checkDuplicate(email string) error {
	var count int64

	err := s.db.Model(&models.PendingRequest{}).
		Where("LOWER(email) = LOWER(?) AND status = ?", email, models.VerificationPending).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check pending requests: %w", err)
	}
	if count > 0 {
		return ErrDuplicatePending
	}

	err = s.db.Model(&models.PendingRequest{}).
		Where("LOWER(email) = LOWER(?) AND status = ?", email, models.VerificationVerified).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check verified requests: %w", err)
	}
	if count > 0 {
		return ErrAlreadyVerified
	}

	err = s.db.Model(&models.Affiliate{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check affiliates: %w", err)
	}
	if count > 0 {
		return ErrAlreadyVerified
	}

	return nil
}
