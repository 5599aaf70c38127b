// controllers/settings.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"dayclap-backend/config"
	"dayclap-backend/models"
	"dayclap-backend/services"
	"dayclap-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maskedKey = "********"

// GetEmailSettings returns the settings row with the sending key masked.
func GetEmailSettings(c *gin.Context) {
	settings, err := services.Store.Settings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Email settings not found")
		return
	}

	masked := *settings
	if masked.SendingKey != "" {
		masked.SendingKey = maskedKey
	}
	c.JSON(http.StatusOK, masked)
}

type UpdateEmailSettingsInput struct {
	ID               string  `json:"id" binding:"required"`
	SendingKey       *string `json:"sending_key"`
	APIEndpoint      *string `json:"api_endpoint"`
	DefaultSender    *string `json:"default_sender"`
	SchedulerEnabled *bool   `json:"scheduler_enabled"`
	ReminderTime     *string `json:"reminder_time"`
}

// UpdateEmailSettings persists new settings and re-applies the scheduler
// configuration so a changed reminder time takes effect immediately.
func UpdateEmailSettings(c *gin.Context) {
	var input UpdateEmailSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settingsID, err := uuid.Parse(input.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid settings ID format")
		return
	}

	var settings models.EmailSettings
	if err := config.DB.First(&settings, "id = ?", settingsID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Email settings not found")
		return
	}

	// The masked placeholder round-trips from the admin UI; never store it.
	if input.SendingKey != nil && *input.SendingKey != "" && *input.SendingKey != maskedKey {
		settings.SendingKey = *input.SendingKey
	}
	if input.APIEndpoint != nil {
		settings.APIEndpoint = *input.APIEndpoint
	}
	if input.DefaultSender != nil {
		settings.DefaultSender = *input.DefaultSender
	}
	if input.SchedulerEnabled != nil {
		settings.SchedulerEnabled = *input.SchedulerEnabled
	}
	if input.ReminderTime != nil {
		settings.ReminderTime = *input.ReminderTime
	}

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update email settings")
		return
	}

	services.Schedule.ConfigureFromSettings(services.Store)

	masked := settings
	if masked.SendingKey != "" {
		masked.SendingKey = maskedKey
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email settings updated", "settings": masked})
}

type TestEmailInput struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
}

// SendTestEmail sends the welcome template as a generic test message.
func SendTestEmail(c *gin.Context) {
	var input TestEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Recipient email is required")
		return
	}

	template, err := services.Store.Template(models.TemplateWelcomeEmail)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Test email template not found")
		return
	}

	renderCtx := map[string]interface{}{
		"user_name":    "Test User",
		"current_year": time.Now().Year(),
		"frontend_url": config.FrontendURL(),
	}
	html := utils.Render(template.HTMLContent, renderCtx)

	if err := services.Email.Send(input.RecipientEmail, "[TEST] "+template.Subject, html); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send test email: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test email sent successfully"})
}

type TestPushInput struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	URL            string `json:"url"`
}

// SendTestPush delivers a test notification to the recipient's stored
// subscription.
func SendTestPush(c *gin.Context) {
	var input TestPushInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Recipient email is required")
		return
	}
	if input.Title == "" {
		input.Title = "Test Push Notification"
	}
	if input.Body == "" {
		input.Body = "This is a test push notification from DayClap."
	}
	if input.URL == "" {
		input.URL = config.FrontendURL()
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "email = ?", input.RecipientEmail).Error; err != nil || profile.PushSubscription == nil {
		utils.RespondWithError(c, http.StatusNotFound, "No active push subscription found for "+input.RecipientEmail)
		return
	}

	payload := services.PushPayload{
		Title: input.Title,
		Body:  input.Body,
		URL:   input.URL,
		Icon:  config.FrontendURL() + "/favicon.svg",
		Badge: config.FrontendURL() + "/favicon.svg",
	}

	if err := services.Push.Send(profile.PushSubscription, payload); err != nil {
		if errors.Is(err, services.ErrSubscriptionGone) {
			if clearErr := services.Store.ClearPushSubscription(profile.ID); clearErr != nil {
				log.Printf("Failed to clear expired push subscription for %s: %v", profile.Email, clearErr)
			}
			utils.RespondWithError(c, http.StatusGone, "Push subscription is no longer valid and was removed")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send test push notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test push notification sent successfully"})
}
