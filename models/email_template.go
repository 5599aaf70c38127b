// models/email_template.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template names the pipeline fetches by key.
const (
	TemplateEventWeekReminder = "event_1week_reminder"
	TemplateInvitationCompany = "invitation_to_company"
	TemplateTaskAssigned      = "task_assigned"
	TemplateWelcomeEmail      = "welcome_email"
)

type EmailTemplate struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Subject     string    `gorm:"not null" json:"subject"`
	HTMLContent string    `gorm:"type:text;not null;column:html_content" json:"html_content"`

	gorm.Model
}

func (t *EmailTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
