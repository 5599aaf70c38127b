// models/email_settings.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailSettings is the single-row source of truth for outbound email and for
// the reminder scheduler configuration.
type EmailSettings struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SendingKey    string    `gorm:"type:text" json:"sending_key"`
	APIEndpoint   string    `gorm:"type:text" json:"api_endpoint"`
	DefaultSender string    `json:"default_sender"`

	SchedulerEnabled bool   `gorm:"default:true" json:"scheduler_enabled"`
	ReminderTime     string `gorm:"type:varchar(5);default:'02:00'" json:"reminder_time"` // "HH:MM" UTC

	gorm.Model
}

func (s *EmailSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
