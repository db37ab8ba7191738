// @title           FindIt Backend API
// @version         1.0.0
// @description     Backend API for the FindIt photo recognition app. Clients submit captured photos; the service classifies them with a label model, enriches the result with the capture location, and stores the labeled image in the user's history.

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
	"log"
	"net/http"
	"net/url"

	"findit-backend/docs"
	"findit-backend/internal/config"
	"findit-backend/internal/database"
	"findit-backend/internal/geocode"
	"findit-backend/internal/handlers"
	"findit-backend/internal/middleware"
	"findit-backend/internal/push"
	"findit-backend/internal/services"
	"findit-backend/internal/supabase"
	"findit-backend/internal/vision"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required; set it to your Supabase PostgreSQL connection string")
	}

	// External clients
	visionClient := vision.NewClient(cfg.VisionAPIBaseURL, cfg.VisionAPIKey)
	geocodeClient := geocode.NewClient(cfg.GeocodeAPIBaseURL)

	var pushClient *push.Client
	if cfg.PushAPIKey != "" {
		pushClient = push.NewClient(cfg.PushAPIBaseURL, cfg.PushAPIKey)
	} else {
		log.Println("Warning: PUSH_API_KEY not set. Result notifications will not be delivered.")
	}

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Pipeline services
	imageStore := services.NewImageStore(storageClient, dbClient)
	classifier := services.NewClassifier(visionClient)
	locator := services.NewLocator(geocodeClient, dbClient, cfg.LocationTimeout)
	var pusher services.Pusher
	if pushClient != nil {
		pusher = pushClient
	}
	notifier := services.NewNotifier(pusher, dbClient)
	pipeline := services.NewPipelineService(classifier, locator, notifier, imageStore, realtimeClient)

	// Handlers
	searchHandler := handlers.NewSearchHandler(pipeline)
	historyHandler := handlers.NewHistoryHandler(imageStore)
	settingsHandler := handlers.NewSettingsHandler(dbClient)
	profilesHandler := handlers.NewProfilesHandler(dbClient, storageClient)
	authHandler := handlers.NewAuthHandler(supabaseClient)

	// Setup router
	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Password reset (no auth; email in body)
	router.POST("/api/v1/auth/reset-password", authHandler.ResetPassword)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/search", searchHandler.Search)

	api.GET("/history", historyHandler.ListHistory)
	api.DELETE("/history", historyHandler.ClearHistory)

	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.UpdateSettings)

	api.GET("/profile", profilesHandler.GetProfile)
	api.PUT("/profile", profilesHandler.UpdateProfile)
	api.POST("/profile/picture", profilesHandler.UploadPicture)

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
