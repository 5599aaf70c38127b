// controllers/notify.go
package controllers

import (
	"net/http"
	"time"

	"dayclap-backend/config"
	"dayclap-backend/models"
	"dayclap-backend/services"
	"dayclap-backend/utils"

	"github.com/gin-gonic/gin"
)

type TaskAssignedInput struct {
	AssignedToEmail string `json:"assigned_to_email" binding:"required,email"`
	AssignedToName  string `json:"assigned_to_name"`
	AssignedByName  string `json:"assigned_by_name"`
	AssignedByEmail string `json:"assigned_by_email"`
	EventTitle      string `json:"event_title"`
	EventDate       string `json:"event_date"`
	EventTime       string `json:"event_time"`
	CompanyName     string `json:"company_name"`
	TaskTitle       string `json:"task_title" binding:"required"`
	TaskDescription string `json:"task_description"`
	DueDate         string `json:"due_date"`
}

// NotifyTaskAssigned emails the assignee of a newly assigned event task.
func NotifyTaskAssigned(c *gin.Context) {
	var input TaskAssignedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing required fields for task notification")
		return
	}

	if input.AssignedToName == "" {
		input.AssignedToName = "there"
	}
	if input.AssignedByName == "" {
		input.AssignedByName = "Someone"
	}
	if input.EventTitle == "" {
		input.EventTitle = "an event"
	}

	template, err := services.Store.Template(models.TemplateTaskAssigned)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Email template not found")
		return
	}

	renderCtx := map[string]interface{}{
		"assignee_name":     input.AssignedToName,
		"assigned_by_name":  input.AssignedByName,
		"assigned_by_email": input.AssignedByEmail,
		"event_title":       input.EventTitle,
		"event_date":        input.EventDate,
		"event_time":        input.EventTime,
		"company_name":      input.CompanyName,
		"task_title":        input.TaskTitle,
		"task_description":  input.TaskDescription,
		"due_date":          input.DueDate,
		"current_year":      time.Now().Year(),
		"frontend_url":      config.FrontendURL(),
	}
	html := utils.Render(template.HTMLContent, renderCtx)

	if err := services.Email.Send(input.AssignedToEmail, template.Subject, html); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send task assigned notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task assigned notification sent"})
}

type WelcomeEmailInput struct {
	Email    string `json:"email" binding:"required,email"`
	UserName string `json:"user_name"`
}

// SendWelcomeEmail is called by the database trigger when a user signs up.
func SendWelcomeEmail(c *gin.Context) {
	var input WelcomeEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email is required")
		return
	}
	if input.UserName == "" {
		input.UserName = "there"
	}

	template, err := services.Store.Template(models.TemplateWelcomeEmail)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Email template not found")
		return
	}

	renderCtx := map[string]interface{}{
		"user_name":    input.UserName,
		"current_year": time.Now().Year(),
		"frontend_url": config.FrontendURL(),
	}
	html := utils.Render(template.HTMLContent, renderCtx)

	if err := services.Email.Send(input.Email, template.Subject, html); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send welcome email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Welcome email sent"})
}
