// controllers/scheduler.go
package controllers

import (
	"net/http"
	"time"

	"dayclap-backend/services"
	"dayclap-backend/utils"

	"github.com/gin-gonic/gin"
)

type SchedulerControlInput struct {
	Action string `json:"action" binding:"required,oneof=start stop"`
}

// SchedulerControl starts or stops the reminder scheduler. Start also
// (re)applies the persisted configuration, so it doubles as a re-schedule
// after settings changes.
func SchedulerControl(c *gin.Context) {
	var input SchedulerControlInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid action")
		return
	}

	switch input.Action {
	case "start":
		services.Schedule.Start()
		services.Schedule.ConfigureFromSettings(services.Store)
		c.JSON(http.StatusOK, gin.H{"message": "Scheduler started and job scheduled"})
	case "stop":
		services.Schedule.Stop()
		c.JSON(http.StatusOK, gin.H{"message": "Scheduler stopped"})
	}
}

func SchedulerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, services.Schedule.Status())
}

// RunRemindersNow triggers a dispatch batch inline, outside the schedule.
// It blocks until the batch completes and obeys the same idempotency rules
// as the scheduled run.
func RunRemindersNow(c *gin.Context) {
	summary := services.Reminders.Run(time.Now().UTC())
	c.JSON(http.StatusOK, summary)
}
