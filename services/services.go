// services/services.go
package services

import "gorm.io/gorm"

// Package-level service instances, wired once at startup (same pattern as
// config.DB).
var (
	Store     *GormStore
	Email     *EmailSender
	Push      *PushSender
	Reminders *ReminderService
	Schedule  *Scheduler
)

func Init(db *gorm.DB) {
	Store = NewGormStore(db)
	Email = NewEmailSender(Store)
	Push = NewPushSender()
	Reminders = NewReminderService(Store, Email, Push)
	Schedule = NewScheduler(Reminders.SendDailyReminders)
}
