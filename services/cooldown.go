// services/cooldown.go
package services

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// CooldownResult reports whether an invitation keyed by the exact
// (sender, recipient, company) triple may be sent now.
type CooldownResult struct {
	Allowed           bool
	RetryAfterSeconds int
	NextAllowedAt     time.Time
}

// CheckInvitationCooldown looks up the most recent prior invitation for the
// key triple and denies when it falls inside the cooldown window. The caller
// inserts the new invitation record on Allowed; that insert is what the next
// check sees.
//
// A lookup failure is logged and treated as Allowed: blocking every
// invitation on a transient read failure is worse than the occasional
// duplicate send.
func CheckInvitationCooldown(store InvitationStore, senderID uuid.UUID, recipientEmail, companyID string, cooldown time.Duration, now time.Time) CooldownResult {
	last, err := store.LastInvitation(senderID, recipientEmail, companyID)
	if err != nil {
		log.Printf("Invitation cooldown lookup failed, allowing send: %v", err)
		return CooldownResult{Allowed: true}
	}
	if last == nil {
		return CooldownResult{Allowed: true}
	}

	elapsed := now.Sub(last.CreatedAt)
	if elapsed >= cooldown {
		return CooldownResult{Allowed: true}
	}

	remaining := int((cooldown - elapsed).Seconds())
	if remaining < 1 {
		remaining = 1
	}
	return CooldownResult{
		Allowed:           false,
		RetryAfterSeconds: remaining,
		NextAllowedAt:     now.Add(time.Duration(remaining) * time.Second),
	}
}
