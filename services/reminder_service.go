// services/reminder_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"dayclap-backend/config"
	"dayclap-backend/models"
	"dayclap-backend/utils"
)

// Marking policies for the reminder idempotency timestamp. "any" is the
// historical behavior: one successful channel marks the event and the other
// channel is never retried.
const (
	MarkAnyChannel  = "any"
	MarkAllChannels = "all"
)

type ReminderService struct {
	store      ReminderStore
	mailer     Mailer
	pusher     Pusher
	markPolicy string
}

func NewReminderService(store ReminderStore, mailer Mailer, pusher Pusher) *ReminderService {
	policy := os.Getenv("REMINDER_MARK_POLICY")
	if policy != MarkAllChannels {
		policy = MarkAnyChannel
	}
	return &ReminderService{
		store:      store,
		mailer:     mailer,
		pusher:     pusher,
		markPolicy: policy,
	}
}

type Failure struct {
	EventID uuid.UUID `json:"event_id"`
	Channel string    `json:"channel"`
	Reason  string    `json:"reason"`
}

type Summary struct {
	Candidates int       `json:"candidates"`
	EmailSent  int       `json:"email_sent"`
	PushSent   int       `json:"push_sent"`
	Failures   []Failure `json:"failures"`
}

// SelectCandidates returns events dated exactly seven days after the
// reference date that have no reminder marker yet. This is a point-in-time
// check, not a rolling window: an event missed on its one eligible day is
// never picked up later. Known limitation, kept on purpose.
func (s *ReminderService) SelectCandidates(ref time.Time) ([]models.Event, error) {
	target := utils.BeginningOfDay(ref).AddDate(0, 0, 7)
	return s.store.DueEvents(target)
}

// SendDailyReminders is the scheduled entry point. Settings are re-checked
// here so a disable that lands between registration and firing is honored.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily 1-week reminder run")

	settings, err := s.store.Settings()
	if err != nil {
		log.Printf("Could not load email settings, proceeding with env fallbacks: %v", err)
	} else if !settings.SchedulerEnabled {
		log.Println("Reminder scheduler disabled in settings, skipping run")
		return
	}

	summary := s.Run(time.Now().UTC())
	log.Printf("Reminder run completed: %d candidates, %d email sent, %d push sent, %d failures",
		summary.Candidates, summary.EmailSent, summary.PushSent, len(summary.Failures))
}

// Run selects candidates for the reference date and dispatches them.
func (s *ReminderService) Run(ref time.Time) Summary {
	candidates, err := s.SelectCandidates(ref)
	if err != nil {
		log.Printf("Candidate selection failed: %v", err)
		return Summary{Failures: []Failure{{Channel: "select", Reason: err.Error()}}}
	}
	return s.RunOnce(candidates)
}

// RunOnce dispatches one batch. Candidates are processed sequentially and a
// failure in one never aborts the rest; everything is collected into the
// summary instead.
func (s *ReminderService) RunOnce(candidates []models.Event) Summary {
	summary := Summary{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return summary
	}

	template, err := s.store.Template(models.TemplateEventWeekReminder)
	if err != nil {
		log.Printf("Reminder template %q not available: %v", models.TemplateEventWeekReminder, err)
		summary.Failures = append(summary.Failures, Failure{Channel: "template", Reason: err.Error()})
		return summary
	}

	channels := []reminderChannel{
		&emailChannel{mailer: s.mailer, template: template},
		&pushChannel{pusher: s.pusher, store: s.store},
	}

	for i := range candidates {
		event := &candidates[i]

		profile, err := s.store.ProfileByID(event.UserID)
		if err != nil || profile == nil {
			reason := "profile not found"
			if err != nil {
				reason = err.Error()
			}
			log.Printf("Event %s: owner profile unavailable, skipping: %s", event.ID, reason)
			summary.Failures = append(summary.Failures, Failure{EventID: event.ID, Channel: "profile", Reason: reason})
			continue
		}

		renderCtx := buildContext(event, profile)

		attempted, succeeded := 0, 0
		for _, ch := range channels {
			if !ch.enabled(profile) {
				continue
			}
			attempted++
			if err := ch.attempt(event, profile, renderCtx); err != nil {
				log.Printf("Event %s: %s channel failed: %v", event.ID, ch.name(), err)
				summary.Failures = append(summary.Failures, Failure{EventID: event.ID, Channel: ch.name(), Reason: err.Error()})
				continue
			}
			succeeded++
			switch ch.name() {
			case channelEmail:
				summary.EmailSent++
			case channelPush:
				summary.PushSent++
			}
		}

		if s.shouldMark(attempted, succeeded) {
			if err := s.store.MarkReminderSent(event.ID, time.Now().UTC()); err != nil {
				log.Printf("Event %s: failed to persist reminder marker: %v", event.ID, err)
				summary.Failures = append(summary.Failures, Failure{EventID: event.ID, Channel: "persist", Reason: err.Error()})
			}
		}
	}

	return summary
}

func (s *ReminderService) shouldMark(attempted, succeeded int) bool {
	if attempted == 0 {
		return false
	}
	if s.markPolicy == MarkAllChannels {
		return succeeded == attempted
	}
	return succeeded > 0
}

func buildContext(event *models.Event, profile *models.Profile) map[string]interface{} {
	name := profile.Name
	if name == "" {
		name = profile.Email
		if at := strings.Index(profile.Email, "@"); at > 0 {
			name = profile.Email[:at]
		}
	}

	total := len(event.Tasks)
	completed := 0
	for _, task := range event.Tasks {
		if task.Completed {
			completed++
		}
	}
	pending := total - completed
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	eventTime := event.Time
	if eventTime == "" {
		eventTime = "N/A"
	}

	return map[string]interface{}{
		"user_name":                  name,
		"event_title":                event.Title,
		"event_date":                 utils.FormatEventDate(event.Date),
		"event_time":                 eventTime,
		"event_location":             event.Location,
		"event_description":          event.Description,
		"has_tasks":                  total > 0,
		"pending_tasks_count":        pending,
		"task_completion_percentage": fmt.Sprintf("%d%%", percentage),
		"current_year":               time.Now().Year(),
		"frontend_url":               config.FrontendURL(),
	}
}

const (
	channelEmail = "email"
	channelPush  = "push"
)

// reminderChannel is the closed set of delivery variants the dispatcher
// iterates over.
type reminderChannel interface {
	name() string
	enabled(profile *models.Profile) bool
	attempt(event *models.Event, profile *models.Profile, renderCtx map[string]interface{}) error
}

type emailChannel struct {
	mailer   Mailer
	template *models.EmailTemplate
}

func (c *emailChannel) name() string { return channelEmail }

func (c *emailChannel) enabled(p *models.Profile) bool {
	return p.Notifications.EmailWeekCountdown
}

func (c *emailChannel) attempt(event *models.Event, profile *models.Profile, renderCtx map[string]interface{}) error {
	html := utils.Render(c.template.HTMLContent, renderCtx)
	return c.mailer.Send(profile.Email, c.template.Subject, html)
}

type pushChannel struct {
	pusher Pusher
	store  ReminderStore
}

func (c *pushChannel) name() string { return channelPush }

func (c *pushChannel) enabled(p *models.Profile) bool {
	return p.Notifications.Push && p.PushSubscription != nil && p.PushSubscription.Endpoint != ""
}

func (c *pushChannel) attempt(event *models.Event, profile *models.Profile, renderCtx map[string]interface{}) error {
	base := config.FrontendURL()
	payload := PushPayload{
		Title: "Upcoming event: " + event.Title,
		Body:  fmt.Sprintf("%s is one week away (%s)", event.Title, utils.FormatEventDate(event.Date)),
		URL:   base,
		Icon:  base + "/favicon.svg",
		Badge: base + "/favicon.svg",
	}

	err := c.pusher.Send(profile.PushSubscription, payload)
	if errors.Is(err, ErrSubscriptionGone) {
		// Only a definitive "gone" clears the stored subscription.
		if clearErr := c.store.ClearPushSubscription(profile.ID); clearErr != nil {
			log.Printf("Profile %s: failed to clear expired push subscription: %v", profile.ID, clearErr)
		} else {
			profile.PushSubscription = nil
		}
	}
	return err
}
