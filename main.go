package main

import (
	"fmt"
	"log"
	"os"

	"dayclap-backend/config"
	"dayclap-backend/models"
	"dayclap-backend/routes"
	"dayclap-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Profile{},
		&models.Event{},
		&models.Invitation{},
		&models.EmailSettings{},
		&models.EmailTemplate{},
	)
}

func main() {
	services.Init(config.DB)

	// Reminder schedule comes from the persisted settings row
	services.Schedule.Start()
	services.Schedule.ConfigureFromSettings(services.Store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
