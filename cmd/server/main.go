package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/taskbridge/task-marketplace-api/internal/config"
	"github.com/taskbridge/task-marketplace-api/internal/constants"
	"github.com/taskbridge/task-marketplace-api/internal/database"
	"github.com/taskbridge/task-marketplace-api/internal/handlers"
	"github.com/taskbridge/task-marketplace-api/internal/middleware"
	"github.com/taskbridge/task-marketplace-api/internal/repository"
	"github.com/taskbridge/task-marketplace-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Open the in-memory task store
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Run migrations and load the mock dataset
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(); err != nil {
		log.Fatalf("Failed to seed mock dataset: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// The session only carries the selected identity, so a cookie store is
	// all the selector needs.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Wire repositories, services and handlers
	taskRepo := repository.NewTaskRepository(database.GetDB())
	userRepo := repository.NewUserRepository(database.GetDB())

	taskService := services.NewTaskService(taskRepo, userRepo, aiService)
	userService := services.NewUserService(userRepo)

	sessionHandler := handlers.NewSessionHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Marketplace API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Identity selector (public)
		api.GET("/users", sessionHandler.ListUsers)
		api.PUT("/session", sessionHandler.SelectUser)
		api.GET("/session", middleware.RequireUser(), sessionHandler.GetCurrentUser)
		api.DELETE("/session", sessionHandler.ClearUser)

		// Task routes (require a selected identity)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireUser())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskView(), taskHandler.GetTask)
			tasks.POST("/:id/accept", taskHandler.AcceptTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.POST("/:id/messages", taskHandler.PostMessage)
		}

		// Tag suggestion for the create-task form
		api.POST("/tags/suggest", middleware.RequireUser(), taskHandler.SuggestTags)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
