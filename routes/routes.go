package routes

import (
	"net/http"
	"time"

	"dayclap-backend/config"
	"dayclap-backend/controllers"
	"dayclap-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-User-Email", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))

	r.Use(config.PerformanceLogger())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "service": "dayclap-backend"})
		})

		// Internal endpoint for the signup trigger
		api.POST("/send-welcome-email", utils.APIKeyMiddleware(), controllers.SendWelcomeEmail)

		// Task notifications are fired from the app on assignment
		api.POST("/notify-task-assigned", controllers.NotifyTaskAssigned)

		authed := api.Group("")
		authed.Use(utils.AuthMiddleware())
		{
			authed.POST("/subscribe-push", controllers.SubscribePush)
			authed.POST("/unsubscribe-push", controllers.UnsubscribePush)
			authed.POST("/send-invitation", controllers.SendInvitation)

			authed.GET("/profile", controllers.GetProfile)
			authed.PUT("/profile/notifications", controllers.UpdateNotifications)
		}

		admin := api.Group("/admin")
		admin.Use(utils.AdminMiddleware())
		{
			admin.POST("/scheduler-control", controllers.SchedulerControl)
			admin.GET("/scheduler-status", controllers.SchedulerStatus)
			admin.POST("/run-reminders-now", controllers.RunRemindersNow)

			admin.GET("/email-settings", controllers.GetEmailSettings)
			admin.PUT("/email-settings", controllers.UpdateEmailSettings)

			templates := admin.Group("/email-templates")
			{
				templates.GET("", controllers.GetEmailTemplates)
				templates.POST("", controllers.CreateEmailTemplate)
				templates.PUT("/:id", controllers.UpdateEmailTemplate)
				templates.DELETE("/:id", controllers.DeleteEmailTemplate)
			}

			admin.POST("/send-test-email", controllers.SendTestEmail)
			admin.POST("/send-test-push", controllers.SendTestPush)
		}
	}

	return r
}
