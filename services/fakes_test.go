package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dayclap-backend/models"
)

// In-memory fakes for the store interfaces, so the pipeline is exercised
// without a database.

type fakeStore struct {
	events      []models.Event
	profiles    map[uuid.UUID]*models.Profile
	template    *models.EmailTemplate
	templateErr error
	settings    *models.EmailSettings
	settingsErr error

	marked  map[uuid.UUID]time.Time
	cleared []uuid.UUID

	lastInvitation *models.Invitation
	invitationErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[uuid.UUID]*models.Profile),
		marked:   make(map[uuid.UUID]time.Time),
		template: &models.EmailTemplate{
			Name:        models.TemplateEventWeekReminder,
			Subject:     "Your event is one week away",
			HTMLContent: "<p>Hi {{ user_name }}, {{ event_title }} is on {{ event_date }}.{{#if has_tasks}} {{ pending_tasks_count }} tasks pending ({{ task_completion_percentage }} done).{{/if}}</p>",
		},
		settings: &models.EmailSettings{SchedulerEnabled: true, ReminderTime: "02:00"},
	}
}

func (f *fakeStore) DueEvents(date time.Time) ([]models.Event, error) {
	var due []models.Event
	for _, e := range f.events {
		if e.Date.Format("2006-01-02") == date.Format("2006-01-02") && e.OneWeekReminderSentAt == nil {
			due = append(due, e)
		}
	}
	return due, nil
}

func (f *fakeStore) ProfileByID(id uuid.UUID) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeStore) Template(name string) (*models.EmailTemplate, error) {
	if f.templateErr != nil {
		return nil, f.templateErr
	}
	return f.template, nil
}

func (f *fakeStore) Settings() (*models.EmailSettings, error) {
	if f.settingsErr != nil {
		return nil, f.settingsErr
	}
	return f.settings, nil
}

func (f *fakeStore) MarkReminderSent(eventID uuid.UUID, at time.Time) error {
	f.marked[eventID] = at
	return nil
}

func (f *fakeStore) ClearPushSubscription(profileID uuid.UUID) error {
	f.cleared = append(f.cleared, profileID)
	return nil
}

func (f *fakeStore) LastInvitation(senderID uuid.UUID, recipientEmail, companyID string) (*models.Invitation, error) {
	if f.invitationErr != nil {
		return nil, f.invitationErr
	}
	return f.lastInvitation, nil
}

type sentMail struct {
	to      string
	subject string
	html    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

type fakePusher struct {
	sent []PushPayload
	err  error
}

func (f *fakePusher) Send(sub *models.PushSubscription, payload PushPayload) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, payload)
	return nil
}
