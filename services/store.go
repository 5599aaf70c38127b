// services/store.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dayclap-backend/models"
)

// ReminderStore is the slice of persistence the reminder pipeline reads and
// writes. Everything else about the records belongs to the CRUD layer.
type ReminderStore interface {
	DueEvents(date time.Time) ([]models.Event, error)
	ProfileByID(id uuid.UUID) (*models.Profile, error)
	Template(name string) (*models.EmailTemplate, error)
	Settings() (*models.EmailSettings, error)
	MarkReminderSent(eventID uuid.UUID, at time.Time) error
	ClearPushSubscription(profileID uuid.UUID) error
}

type SettingsSource interface {
	Settings() (*models.EmailSettings, error)
}

type InvitationStore interface {
	LastInvitation(senderID uuid.UUID, recipientEmail, companyID string) (*models.Invitation, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DueEvents(date time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.db.
		Where("date = ? AND one_week_reminder_sent_at IS NULL", date.Format("2006-01-02")).
		Find(&events).Error
	return events, err
}

func (s *GormStore) ProfileByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *GormStore) Template(name string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	if err := s.db.First(&template, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *GormStore) Settings() (*models.EmailSettings, error) {
	var settings models.EmailSettings
	if err := s.db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *GormStore) MarkReminderSent(eventID uuid.UUID, at time.Time) error {
	return s.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("one_week_reminder_sent_at", at).Error
}

func (s *GormStore) ClearPushSubscription(profileID uuid.UUID) error {
	return s.db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("push_subscription", nil).Error
}

func (s *GormStore) LastInvitation(senderID uuid.UUID, recipientEmail, companyID string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := s.db.
		Where("sender_id = ? AND recipient_email = ? AND company_id = ?", senderID, recipientEmail, companyID).
		Order("created_at DESC").
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}
