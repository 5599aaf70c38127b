package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"dayclap-backend/models"
)

const testCooldown = 300 * time.Second

func invitationAt(created time.Time) *models.Invitation {
	return &models.Invitation{
		SenderID:       uuid.New(),
		RecipientEmail: "member@example.com",
		CompanyID:      "acme",
		Model:          gorm.Model{CreatedAt: created},
	}
}

// Test 1: No prior invitation is always allowed
func TestCooldown_FirstInvitationAllowed(t *testing.T) {
	store := newFakeStore()

	result := CheckInvitationCooldown(store, uuid.New(), "member@example.com", "acme", testCooldown, time.Now().UTC())

	assert.True(t, result.Allowed)
}

// Test 2: An identical-key invitation inside the window is denied with the
// remaining wait
func TestCooldown_DeniedInsideWindow(t *testing.T) {
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.lastInvitation = invitationAt(base)

	result := CheckInvitationCooldown(store, uuid.New(), "member@example.com", "acme", testCooldown, base.Add(100*time.Second))

	assert.False(t, result.Allowed)
	assert.Equal(t, 200, result.RetryAfterSeconds)
	assert.Equal(t, base.Add(300*time.Second), result.NextAllowedAt)
}

// Test 3: Once the window has elapsed the key is allowed again
func TestCooldown_AllowedAfterWindow(t *testing.T) {
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.lastInvitation = invitationAt(base)

	result := CheckInvitationCooldown(store, uuid.New(), "member@example.com", "acme", testCooldown, base.Add(301*time.Second))

	assert.True(t, result.Allowed)
}

// Test 4: The boundary instant is out of the window
func TestCooldown_ExactBoundaryAllowed(t *testing.T) {
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.lastInvitation = invitationAt(base)

	result := CheckInvitationCooldown(store, uuid.New(), "member@example.com", "acme", testCooldown, base.Add(300*time.Second))

	assert.True(t, result.Allowed)
}

// Test 5: RetryAfterSeconds is always positive, even at the tail of the window
func TestCooldown_RetryAfterNeverZero(t *testing.T) {
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.lastInvitation = invitationAt(base)

	result := CheckInvitationCooldown(store, uuid.New(), "member@example.com", "acme", testCooldown, base.Add(300*time.Second-50*time.Millisecond))

	assert.False(t, result.Allowed)
	assert.GreaterOrEqual(t, result.RetryAfterSeconds, 1)
}

// Test 6: A lookup failure defaults to Allowed instead of blocking all sends
func TestCooldown_LookupFailureAllows(t *testing.T) {
	store := newFakeStore()
	store.invitationErr = assert.AnError

	result := CheckInvitationCooldown(store, uuid.New(), "member@example.com", "acme", testCooldown, time.Now().UTC())

	assert.True(t, result.Allowed)
	assert.Zero(t, result.RetryAfterSeconds)
}
