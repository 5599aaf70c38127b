// models/event.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CompanyID string    `gorm:"type:varchar(64);index" json:"company_id"`

	Title       string    `gorm:"not null" json:"title"`
	Date        time.Time `gorm:"type:date;index;not null" json:"date"`
	Time        string    `gorm:"type:varchar(5)" json:"time"` // "HH:MM", optional
	Location    string    `json:"location"`
	Description string    `gorm:"type:text" json:"description"`

	Tasks Tasks `gorm:"type:jsonb;column:event_tasks" json:"event_tasks"`

	// Idempotency marker for the 1-week reminder: null until at least one
	// delivery channel succeeded, then never reset.
	OneWeekReminderSentAt *time.Time `json:"one_week_reminder_sent_at"`

	gorm.Model
}

// Initialize UUID before creating
func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

type Task struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Custom JSONB type for embedded event tasks
type Tasks []Task

func (t Tasks) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]Task{})
	}
	return json.Marshal(t)
}

func (t *Tasks) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, t)
}
