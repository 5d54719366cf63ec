package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pranav-builds/jobtrackr/internal/auth"
	"github.com/pranav-builds/jobtrackr/internal/config"
	"github.com/pranav-builds/jobtrackr/internal/database"
	"github.com/pranav-builds/jobtrackr/internal/handlers"
	"github.com/pranav-builds/jobtrackr/internal/services"
)

func main() {
	// 1. Environment + Config
	// .env is optional; a deployed instance gets real env vars.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	// 2. Database Connection + Migrations
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	log.Println("Database connection established")

	// 3. Core Services
	llmService := services.NewLLMService(cfg)
	feedService := services.NewFeedService()
	matcherService := services.NewMatcherService(db)
	jobService := services.NewJobService(db, matcherService, feedService)
	boardService := services.NewBoardService(db)

	// 4. Handlers
	jobHandler := handlers.NewJobHandler(llmService, jobService, feedService)
	statsHandler := handlers.NewStatsHandler(jobService)
	boardHandler := handlers.NewBoardHandler(boardService)

	// 5. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true // For development only
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-User-ID", "X-User-Email"}
	r.Use(cors.New(corsConfig))
	r.Use(auth.Middleware(db))

	// 6. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Reads work for any request; an anonymous one just sees an empty
		// collection.
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/grouped", jobHandler.GroupedJobs)
		api.GET("/jobs/watch", jobHandler.WatchJobs)
		api.GET("/jobs/:id/events", jobHandler.JobEvents)
		api.GET("/stats", statsHandler.Stats)
		api.GET("/boards", boardHandler.ListBoards)

		// Mutations need an identity.
		authed := api.Group("", auth.RequireOwner)
		{
			authed.POST("/jobs/extract", jobHandler.ParseJob)
			authed.POST("/jobs", jobHandler.CreateJob)
			authed.PUT("/jobs/:id", jobHandler.UpdateJob)
			authed.PATCH("/jobs/:id/status", jobHandler.ChangeStatus)
			authed.POST("/jobs/:id/tags", jobHandler.AddTag)
			authed.DELETE("/jobs/:id/tags/:tag", jobHandler.RemoveTag)
			authed.POST("/jobs/:id/feedback", jobHandler.SetFeedback)
			authed.DELETE("/jobs/:id", jobHandler.DeleteJob)
			authed.POST("/boards", boardHandler.CreateBoard)
		}
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
