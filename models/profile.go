// models/profile.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	Name  string    `json:"name"`

	Companies        Companies         `gorm:"type:jsonb" json:"companies"`
	Notifications    Notifications     `gorm:"type:jsonb" json:"notifications"`
	PushSubscription *PushSubscription `gorm:"type:jsonb" json:"push_subscription"`

	LastActivityAt *time.Time `json:"last_activity_at"`

	gorm.Model
}

// Initialize UUID before creating
func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// Notification preferences read by the reminder pipeline.
type Notifications struct {
	EmailWeekCountdown bool `json:"email_1week_countdown"`
	Push               bool `json:"push"`
}

func (n Notifications) Value() (driver.Value, error) {
	return json.Marshal(n)
}

func (n *Notifications) Scan(value interface{}) error {
	if value == nil {
		*n = Notifications{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, n)
}

// Web Push subscription as handed over by the browser: the endpoint plus the
// key material needed to encrypt a message to this client.
type PushSubscription struct {
	Endpoint string               `json:"endpoint"`
	Keys     PushSubscriptionKeys `json:"keys"`
}

type PushSubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

func (s PushSubscription) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *PushSubscription) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

type CompanyMembership struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Companies []CompanyMembership

func (c Companies) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal([]CompanyMembership{})
	}
	return json.Marshal(c)
}

func (c *Companies) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, c)
}

// RoleFor returns the caller's role within a company (lowercased), or ""
// when not a member.
func (p *Profile) RoleFor(companyID string) string {
	for _, c := range p.Companies {
		if c.ID == companyID {
			return strings.ToLower(c.Role)
		}
	}
	return ""
}
