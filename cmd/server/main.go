package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"upcycle-wizard-backend/internal/config"
	"upcycle-wizard-backend/internal/database"
	"upcycle-wizard-backend/internal/elevenlabs"
	"upcycle-wizard-backend/internal/gemini"
	"upcycle-wizard-backend/internal/handlers"
	"upcycle-wizard-backend/internal/middleware"
	"upcycle-wizard-backend/internal/services"
	"upcycle-wizard-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Log.WithError(err).Fatal("failed to load configuration")
	}
	config.ConfigureLogger(cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// AI clients
	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:             cfg.GeminiAPIKey,
		BaseURL:            cfg.GeminiAPIBaseURL,
		TextModel:          cfg.GeminiTextModel,
		ImageModel:         cfg.ImagenModel,
		ImageFallbackModel: cfg.ImagenFallbackModel,
	})
	ttsClient := elevenlabs.NewClient("", cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID)

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		config.Log.WithError(err).Fatal("failed to initialize Supabase client")
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		config.Log.WithError(err).Fatal("failed to initialize storage client")
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	if cfg.DatabaseURL == "" {
		config.Log.Fatal("DATABASE_URL is required; set it to your Supabase PostgreSQL connection string")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		config.Log.WithError(err).Fatal("failed to initialize database client")
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		config.Log.WithError(err).Fatal("failed to initialize migrator")
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		config.Log.WithError(err).Fatal("migration failed")
	}
	config.Log.Info("migrations completed")

	// Pipeline and handlers
	pipeline := services.NewGuidePipeline(geminiClient, storageClient, dbClient, realtimeClient)

	projectsHandler := handlers.NewProjectsHandler(dbClient)
	exploreHandler := handlers.NewExploreHandler(dbClient)
	generateHandler := handlers.NewGenerateHandler(pipeline)
	likesHandler := handlers.NewLikesHandler(dbClient)
	commentsHandler := handlers.NewCommentsHandler(dbClient)
	feedbackHandler := handlers.NewFeedbackHandler(dbClient)
	ttsHandler := handlers.NewTTSHandler(ttsClient)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.GET("/projects/:project_id/steps", projectsHandler.GetSteps)

	api.GET("/explore", exploreHandler.Explore)

	api.POST("/generate-guide", generateHandler.Generate)

	api.POST("/projects/:project_id/like", likesHandler.ToggleLike)
	api.GET("/projects/:project_id/comments", commentsHandler.ListComments)
	api.POST("/projects/:project_id/comments", commentsHandler.CreateComment)
	api.GET("/projects/:project_id/feedback", feedbackHandler.ListFeedback)
	api.POST("/projects/:project_id/feedback", feedbackHandler.CreateFeedback)

	api.POST("/text-to-speech", ttsHandler.Synthesize)

	config.Log.WithField("port", cfg.Port).Info("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		config.Log.WithError(err).Fatal("failed to start server")
	}
}
