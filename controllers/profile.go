// controllers/profile.go
package controllers

import (
	"net/http"

	"dayclap-backend/config"
	"dayclap-backend/models"
	"dayclap-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"id":            profile.ID,
		"email":         profile.Email,
		"name":          profile.Name,
		"companies":     profile.Companies,
		"notifications": profile.Notifications,
		"has_push":      profile.PushSubscription != nil,
	})
}

type UpdateNotificationsInput struct {
	EmailWeekCountdown *bool `json:"email_1week_countdown"`
	Push               *bool `json:"push"`
}

func UpdateNotifications(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input UpdateNotificationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	if input.EmailWeekCountdown != nil {
		profile.Notifications.EmailWeekCountdown = *input.EmailWeekCountdown
	}
	if input.Push != nil {
		profile.Notifications.Push = *input.Push
	}

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications updated", "notifications": profile.Notifications})
}
