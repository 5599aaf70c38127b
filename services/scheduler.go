// services/scheduler.go
package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultReminderTime = "02:00"

type SchedulerStatus struct {
	Running      bool       `json:"is_running"`
	JobScheduled bool       `json:"job_scheduled"`
	NextRunTime  *time.Time `json:"next_run_time"`
}

// Scheduler owns the single recurring reminder trigger. The job slot is
// guarded by a mutex and Configure always removes before adding, so
// overlapping reconfigurations can never leave two registrations behind.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	hasJob  bool
	running bool
	run     func()
}

func NewScheduler(run func()) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		run:  run,
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	log.Println("Reminder scheduler started")
}

// Stop prevents future firings; an in-flight run is allowed to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	log.Println("Reminder scheduler stopped")
}

// Configure atomically replaces the recurring job registration, or removes it
// when disabled.
func (s *Scheduler) Configure(enabled bool, timeOfDay string) {
	hour, minute := ParseReminderTime(timeOfDay)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasJob {
		s.cron.Remove(s.entryID)
		s.hasJob = false
	}
	if !enabled {
		log.Println("Reminder job disabled; no trigger registered")
		return
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	id, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		log.Printf("Failed to register reminder job (%s): %v", spec, err)
		return
	}
	s.entryID = id
	s.hasJob = true
	log.Printf("Daily reminders scheduled for %02d:%02d UTC", hour, minute)
}

// ConfigureFromSettings applies the persisted scheduler configuration.
func (s *Scheduler) ConfigureFromSettings(settings SettingsSource) {
	row, err := settings.Settings()
	if err != nil {
		log.Printf("Scheduler settings unavailable, not scheduling job: %v", err)
		return
	}
	s.Configure(row.SchedulerEnabled, row.ReminderTime)
}

func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SchedulerStatus{Running: s.running, JobScheduled: s.hasJob}
	if s.hasJob {
		if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
			status.NextRunTime = &next
		}
	}
	return status
}

// ParseReminderTime parses an "HH:MM" time of day. Invalid input never
// reaches the firing loop; it falls back to 02:00 with a logged rejection.
func ParseReminderTime(v string) (hour, minute int) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) == 2 {
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && h >= 0 && h < 24 && m >= 0 && m < 60 {
			return h, m
		}
	}
	log.Printf("Invalid reminder_time %q, defaulting to %s", v, defaultReminderTime)
	return 2, 0
}
