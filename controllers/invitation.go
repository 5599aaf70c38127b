// controllers/invitation.go
package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dayclap-backend/config"
	"dayclap-backend/models"
	"dayclap-backend/services"
	"dayclap-backend/utils"

	"github.com/gin-gonic/gin"
)

type SendInvitationInput struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	CompanyID      string `json:"company_id" binding:"required"`
	CompanyName    string `json:"company_name" binding:"required"`
	Role           string `json:"role"`
}

// SendInvitation records a company invitation. Sender identity comes from the
// token, never from the body. Identical-key invitations inside the cooldown
// window are rejected with 429 and a Retry-After duration.
func SendInvitation(c *gin.Context) {
	senderID, ok := authUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	senderEmail, ok := authUserEmail(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User email not found in context")
		return
	}

	var input SendInvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	recipient := strings.ToLower(strings.TrimSpace(input.RecipientEmail))
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role != "admin" {
		role = "user"
	}

	var sender models.Profile
	if err := config.DB.First(&sender, "id = ?", senderID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Sender profile not found")
		return
	}

	senderRole := sender.RoleFor(input.CompanyID)
	if senderRole != "owner" && senderRole != "admin" {
		utils.RespondWithError(c, http.StatusForbidden, "Only owner/admin can send invitations for this company")
		return
	}

	cooldown := time.Duration(config.InviteCooldownSeconds()) * time.Second
	result := services.CheckInvitationCooldown(services.Store, senderID, recipient, input.CompanyID, cooldown, time.Now().UTC())
	if !result.Allowed {
		c.Header("Retry-After", strconv.Itoa(result.RetryAfterSeconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":               "Please wait before sending another invite to this person for this company",
			"retry_after_seconds": result.RetryAfterSeconds,
			"next_allowed_at":     result.NextAllowedAt.UTC().Format(time.RFC3339),
		})
		return
	}

	invitation := models.Invitation{
		SenderID:       senderID,
		SenderEmail:    senderEmail,
		RecipientEmail: recipient,
		CompanyID:      input.CompanyID,
		CompanyName:    input.CompanyName,
		Role:           role,
		Status:         models.InvitationStatusPending,
	}
	if err := config.DB.Create(&invitation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record invitation")
		return
	}

	// Invitation email is best effort: the recorded invitation stands even
	// when the gateway is down.
	if template, err := services.Store.Template(models.TemplateInvitationCompany); err != nil {
		log.Printf("Invitation email template not available: %v", err)
	} else {
		renderCtx := map[string]interface{}{
			"sender_email": senderEmail,
			"company_name": input.CompanyName,
			"role":         strings.ToUpper(role[:1]) + role[1:],
			"current_year": time.Now().Year(),
			"frontend_url": config.FrontendURL(),
		}
		html := utils.Render(template.HTMLContent, renderCtx)
		if err := services.Email.SendFrom(senderEmail, recipient, template.Subject, html); err != nil {
			log.Printf("Invitation email to %s failed: %v", recipient, err)
		}
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":          "Invitation sent",
		"cooldown_seconds": config.InviteCooldownSeconds(),
	})
}
