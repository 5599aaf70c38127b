// models/invitation.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvitationStatusPending = "pending"
)

type Invitation struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SenderID       uuid.UUID `gorm:"type:uuid;index;not null" json:"sender_id"`
	SenderEmail    string    `gorm:"not null" json:"sender_email"`
	RecipientEmail string    `gorm:"index;not null" json:"recipient_email"`
	CompanyID      string    `gorm:"type:varchar(64);index;not null" json:"company_id"`
	CompanyName    string    `gorm:"not null" json:"company_name"`
	Role           string    `gorm:"type:varchar(20);default:user" json:"role"` // user, admin
	Status         string    `gorm:"type:varchar(20);default:pending" json:"status"`

	gorm.Model
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
