// @title           Hyper Reel Backend API
// @version         1.0.0
// @description     Backend API for the Hyper Reel media organizer. Manages projects, storyboard scenes and image slots with position-based ordering, a flat media library per project, and AI image generation through Wavespeed models.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"hyper-reel-backend/docs"
	"hyper-reel-backend/internal/config"
	"hyper-reel-backend/internal/handlers"
	"hyper-reel-backend/internal/middleware"
	"hyper-reel-backend/internal/repository"
	"hyper-reel-backend/internal/services"
	"hyper-reel-backend/internal/state"
	"hyper-reel-backend/internal/store"
	"hyper-reel-backend/internal/wavespeed"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Open the document store and bring the schema up to date
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", cfg.DatabasePath, err)
	}
	defer st.Close()

	migrator := store.NewMigrator(st.DB())
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Repositories, children first so cascades can be wired upward
	resultsRepo := repository.NewGenerationResultRepository(st)
	imagesRepo := repository.NewSceneImageRepository(st, resultsRepo)
	scenesRepo := repository.NewSceneRepository(st, imagesRepo)
	mediaRepo := repository.NewMediaRepository(st)
	projectsRepo := repository.NewProjectRepository(st, scenesRepo, mediaRepo)
	settingsRepo := repository.NewSettingsRepository(st)

	// State stores and the change-event hub
	hub := state.NewHub()
	projectStore := state.NewProjectStore(projectsRepo, hub)
	sceneStore := state.NewSceneStore(scenesRepo, hub)
	imageStore := state.NewSceneImageStore(imagesRepo, hub)
	resultStore := state.NewGenerationResultStore(resultsRepo, hub)
	mediaStore := state.NewMediaStore(mediaRepo, hub)
	settingsStore := state.NewSettingsStore(settingsRepo, hub)

	if _, err := settingsStore.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Wavespeed client and generation service
	wavespeedClient := wavespeed.NewClient(cfg.WavespeedBaseURL)
	generationService := services.NewGenerationService(
		wavespeedClient,
		mediaStore,
		imageStore,
		resultStore,
		settingsStore,
		cfg.WavespeedAPIKey,
	)

	// Handlers
	projectsHandler := handlers.NewProjectsHandler(projectStore)
	scenesHandler := handlers.NewScenesHandler(sceneStore)
	imagesHandler := handlers.NewSceneImagesHandler(imageStore, resultStore, generationService)
	mediaHandler := handlers.NewMediaHandler(mediaStore, generationService)
	settingsHandler := handlers.NewSettingsHandler(settingsStore)
	eventsHandler := handlers.NewEventsHandler(hub)

	// Setup router
	router := gin.Default()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	if cfg.AuthSecret != "" {
		api.Use(middleware.AuthMiddleware(cfg))
	}

	// Project routes
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PATCH("/projects/:project_id", projectsHandler.UpdateProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	// Scene routes
	api.GET("/projects/:project_id/scenes", scenesHandler.ListScenes)
	api.POST("/projects/:project_id/scenes", scenesHandler.CreateScene)
	api.PATCH("/scenes/:scene_id", scenesHandler.UpdateScene)
	api.DELETE("/scenes/:scene_id", scenesHandler.DeleteScene)

	// Scene image routes
	api.GET("/scenes/:scene_id/images", imagesHandler.ListSceneImages)
	api.POST("/scenes/:scene_id/images", imagesHandler.CreateSceneImage)
	api.PATCH("/images/:image_id", imagesHandler.UpdateSceneImage)
	api.DELETE("/images/:image_id", imagesHandler.DeleteSceneImage)
	api.GET("/images/:image_id/results", imagesHandler.ListResults)
	api.DELETE("/images/:image_id/results", imagesHandler.ClearResults)
	api.POST("/images/:image_id/generate", imagesHandler.GenerateForImage)

	// Media library routes
	api.GET("/projects/:project_id/media", mediaHandler.ListMedia)
	api.POST("/projects/:project_id/media", mediaHandler.UploadMedia)
	api.POST("/projects/:project_id/media/generate", mediaHandler.GenerateMedia)
	api.GET("/media/:media_id", mediaHandler.GetMedia)
	api.PATCH("/media/:media_id", mediaHandler.UpdateMedia)
	api.DELETE("/media/:media_id", mediaHandler.DeleteMedia)

	// Settings and model registry
	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.UpdateSettings)
	api.GET("/models", handlers.ListModels)

	// Change-event stream
	api.GET("/events", eventsHandler.StreamEvents)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
