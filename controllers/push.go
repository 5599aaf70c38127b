// controllers/push.go
package controllers

import (
	"net/http"
	"time"

	"dayclap-backend/config"
	"dayclap-backend/models"
	"dayclap-backend/utils"

	"github.com/gin-gonic/gin"
)

// PushSubscriptionInput is the subscription object handed over by the browser.
type PushSubscriptionInput struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// SubscribePush stores a push subscription for the authenticated user and
// turns the push preference on.
func SubscribePush(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input PushSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	now := time.Now().UTC()
	profile.PushSubscription = &models.PushSubscription{
		Endpoint: input.Endpoint,
		Keys: models.PushSubscriptionKeys{
			P256dh: input.Keys.P256dh,
			Auth:   input.Keys.Auth,
		},
	}
	profile.Notifications.Push = true
	profile.LastActivityAt = &now

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription saved"})
}

// UnsubscribePush removes the stored subscription and turns the push
// preference off.
func UnsubscribePush(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	now := time.Now().UTC()
	profile.PushSubscription = nil
	profile.Notifications.Push = false
	profile.LastActivityAt = &now

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to disable subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription disabled"})
}
