package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fencetrade/signalboard/internal/config"
	"github.com/fencetrade/signalboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWebhookRecorder(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func submission(email string) *models.VerificationSubmission {
	return &models.VerificationSubmission{
		FullName:        "Jordan Price",
		Country:         "United Kingdom",
		Email:           email,
		DiscordUsername: "jordan#0001",
	}
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{}))

	t.Run("missing email", func(t *testing.T) {
		sub := submission("")
		err := svc.Submit(sub)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("missing name", func(t *testing.T) {
		sub := submission("jordan@example.com")
		sub.FullName = ""
		sub.Name = ""
		err := svc.Submit(sub)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("name accepted under either field", func(t *testing.T) {
		sub := submission("either@example.com")
		sub.FullName = ""
		sub.Name = "Jordan Price"
		assert.NoError(t, svc.Submit(sub))
	})

	var count int64
	require.NoError(t, db.Model(&models.PendingRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitStoresPendingRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{}))

	require.NoError(t, svc.Submit(submission("jordan@example.com")))

	var req models.PendingRequest
	require.NoError(t, db.First(&req).Error)
	assert.Equal(t, "Jordan Price", req.Name)
	assert.Equal(t, "jordan@example.com", req.Email)
	assert.Equal(t, "website", req.Source)
	assert.Equal(t, models.VerificationPending, req.Status)
	assert.False(t, req.CreatedAt.IsZero())
}

func TestSubmitRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{}))

	require.NoError(t, svc.Submit(submission("Jordan@Example.com")))

	err := svc.Submit(submission("jordan@example.COM"))
	assert.ErrorIs(t, err, ErrDuplicatePending)

	var count int64
	require.NoError(t, db.Model(&models.PendingRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitStoresLowercasedEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{}))

	require.NoError(t, svc.Submit(submission("  Jordan@Example.COM ")))

	var req models.PendingRequest
	require.NoError(t, db.First(&req).Error)
	assert.Equal(t, "jordan@example.com", req.Email)
}

func TestSubmitRejectsVerifiedEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{}))

	t.Run("verified pending row", func(t *testing.T) {
		require.NoError(t, db.Create(&models.PendingRequest{
			Name:   "Sam",
			Email:  "sam@example.com",
			Status: models.VerificationVerified,
		}).Error)

		err := svc.Submit(submission("SAM@example.com"))
		assert.ErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("affiliate row", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Affiliate{
			UserID: "TN-10042",
			Name:   "Alex",
			Email:  "alex@example.com",
		}).Error)

		err := svc.Submit(submission("Alex@Example.com"))
		assert.ErrorIs(t, err, ErrAlreadyVerified)
	})
}

func TestSubmitSendsWebhookNotification(t *testing.T) {
	srv, bodies := newWebhookRecorder(t)
	db := newTestDB(t)
	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{URL: srv.URL, TimeoutSeconds: 2}))

	require.NoError(t, svc.Submit(submission("jordan@example.com")))

	require.Len(t, *bodies, 1)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte((*bodies)[0]), &payload))
	embeds, ok := payload["embeds"].([]interface{})
	require.True(t, ok)
	require.Len(t, embeds, 1)
	assert.Contains(t, (*bodies)[0], "New Verification Request")
	assert.Contains(t, (*bodies)[0], "jordan@example.com")
}

func TestSubmitWebhookFailureDoesNotFailRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	db := newTestDB(t)
	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{URL: srv.URL, TimeoutSeconds: 2}))

	require.NoError(t, svc.Submit(submission("jordan@example.com")))

	var count int64
	require.NoError(t, db.Model(&models.PendingRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitStorageFailureStillNotifies(t *testing.T) {
	srv, bodies := newWebhookRecorder(t)
	db := newTestDB(t)

	// Fault injection: make writes to pending_requests fail while the
	// duplicate-check reads keep working.
	require.NoError(t, db.Exec(`
		CREATE TRIGGER fail_pending_insert BEFORE INSERT ON pending_requests
		BEGIN SELECT RAISE(ABORT, 'simulated storage failure'); END
	`).Error)

	svc := NewVerificationService(db, NewNotifyService(config.WebhookConfig{URL: srv.URL, TimeoutSeconds: 2}))

	// The write fails, the submission still succeeds and the admin is
	// still notified.
	require.NoError(t, svc.Submit(submission("jordan@example.com")))
	require.Len(t, *bodies, 1)
	assert.True(t, strings.Contains((*bodies)[0], "jordan@example.com"))

	var count int64
	require.NoError(t, db.Model(&models.PendingRequest{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestNotifyWithoutURLLogsLocally(t *testing.T) {
	notify := NewNotifyService(config.WebhookConfig{})
	err := notify.NotifyVerification(&models.PendingRequest{
		Name:  "Jordan Price",
		Email: "jordan@example.com",
	})
	assert.NoError(t, err)
}
