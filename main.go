package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"daily-quote-server/config"
	"daily-quote-server/database"
	"daily-quote-server/jobs"
	"daily-quote-server/middleware"
	"daily-quote-server/routes"
	"daily-quote-server/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// External collaborators. Both are optional: without credentials the
	// affected endpoints answer 503 instead of the process refusing to boot.
	var generator routes.Generator
	if gen, err := services.NewQuoteGenerator(config.AppConfig.OpenAI.APIKey, config.AppConfig.OpenAI.Model); err != nil {
		log.Printf("⚠️ Quote generation disabled: %v", err)
	} else {
		generator = gen
	}

	var push *services.PushService
	if p, err := services.NewPushService(config.AppConfig.FCM.ServerKey); err != nil {
		log.Printf("⚠️ Push delivery disabled: %v", err)
	} else {
		push = p
	}

	quoteHandler := routes.NewQuoteHandler(generator, push)
	notificationHandler := routes.NewNotificationHandler(push)

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", routes.HealthCheck)

	// API routes
	api := router.Group("/api/v1")
	{
		// Diagnostics (public)
		api.GET("/ping", routes.Ping)
		api.POST("/ping", routes.Ping)
		api.GET("/debug", routes.Debug)
		api.POST("/init", routes.InitDatabase)
		api.GET("/next-quote-time", routes.NextQuoteTime)

		// User registration and preferences (public, device-keyed)
		api.POST("/users/register", routes.RegisterUser)
		api.PUT("/users/preferences", routes.UpdateUserPreferences)
		api.POST("/devices/register", routes.RegisterDevice)

		// Quote reads and client saves (public)
		api.GET("/quotes/all", routes.GetAllQuotes)
		api.GET("/quotes/latest", routes.GetLatestQuote)
		api.GET("/quotes/find", routes.FindQuote)
		api.POST("/quotes/save", routes.SaveQuote)
		api.GET("/today-quote", routes.GetTodayQuote)

		// Favorites (public, device-keyed)
		api.POST("/favorites/toggle", routes.ToggleFavorite)
		api.GET("/favorites/list", routes.GetFavorites)
		api.POST("/favorites/clear", routes.ClearFavorites)

		// Manual dispatch triggers (public, matching the legacy clients)
		api.POST("/send-daily-notifications", notificationHandler.SendDailyNotifications)
		api.POST("/manual/daily-quote", quoteHandler.EnsureDailyQuote)
		api.POST("/manual/notifications", notificationHandler.DispatchDueNotifications)

		// Admin authentication (no authentication required)
		adminAuth := api.Group("/admin/auth")
		adminAuth.POST("/login", routes.AdminLogin)

		// Admin routes (protected with admin authentication)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware())
		{
			adminRoutes.GET("/quotes", routes.GetAdminQuotes)
			adminRoutes.GET("/stats", routes.GetStats)
			adminRoutes.GET("/notifications", routes.GetNotificationLog)
			adminRoutes.POST("/migrate", routes.RunMigration)
			adminRoutes.POST("/cleanup-duplicates", routes.CleanupDuplicates)
		}

		// Generation and broadcast accept either an admin JWT or the
		// automation API key
		automation := api.Group("/admin")
		automation.Use(middleware.AdminOrAPIKeyMiddleware())
		{
			automation.POST("/quotes/generate", quoteHandler.GenerateQuote)
			automation.POST("/quotes/send", quoteHandler.SendQuote)
		}

		// Scheduler routes (protected by the cron secret)
		cronRoutes := api.Group("/cron")
		cronRoutes.Use(middleware.CronAuthMiddleware())
		{
			cronRoutes.POST("/daily-quote", quoteHandler.EnsureDailyQuote)
			cronRoutes.POST("/send-notifications", notificationHandler.DispatchDueNotifications)
			cronRoutes.POST("/send-quote", quoteHandler.GenerateAndSendQuote)
		}
	}

	// Start background jobs
	if config.AppConfig.Jobs.Enabled {
		dailyQuoteJob := jobs.NewDailyQuoteJob(generator)
		dailyQuoteJob.Start()
		defer dailyQuoteJob.Stop()

		if push != nil {
			notificationJob := jobs.NewNotificationJob(push)
			notificationJob.Start()
			defer notificationJob.Stop()
		} else {
			log.Println("⚠️ Notification job not started: push delivery is disabled")
		}
	}

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
