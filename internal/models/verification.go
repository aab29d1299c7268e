package models

import (
	"time"
)

// Verification request statuses. Promotion from pending to verified is
// done by the affiliate verifier process, not by this service.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// PendingRequest represents one membership/affiliate verification
// request submitted through the website form. Email is unique among
// pending and verified requests, compared case-insensitively.
type PendingRequest struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Country         string    `json:"country"`
	Email           string    `json:"email" gorm:"not null;index"`
	DiscordUsername string    `json:"discord_username"`
	Source          string    `json:"source" gorm:"default:'website'"`
	Status          string    `json:"status" gorm:"default:'pending'"`
	CreatedAt       time.Time `json:"created_at"`
}

// Affiliate represents a confirmed affiliate account. Rows are written
// by the portal matcher; this subsystem only reads them for the
// already-verified duplicate check.
type Affiliate struct {
	UserID           string    `json:"user_id" gorm:"primaryKey"`
	Name             string    `json:"name"`
	Country          string    `json:"country"`
	Email            string    `json:"email" gorm:"index"`
	DiscordUsername  string    `json:"discord_username"`
	RegistrationDate string    `json:"registration_date"`
	VerifiedAt       time.Time `json:"verified_at"`
}

// VerificationSubmission is the request body of the verification
// endpoint. Older deployments of the form post the name under
// "fullName", newer ones under "name"; both are accepted.
type VerificationSubmission struct {
	FullName        string `json:"fullName"`
	Name            string `json:"name"`
	Country         string `json:"country"`
	Email           string `json:"email"`
	DiscordUsername string `json:"discordUsername"`
}

// DisplayName returns whichever name field the form populated.
func (v *VerificationSubmission) DisplayName() string {
	if v.FullName != "" {
		return v.FullName
	}
	return v.Name
}
