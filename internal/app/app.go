package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "socialblaster/internal/controller/http"
	"socialblaster/internal/media"
	"socialblaster/internal/platform"
	"socialblaster/internal/publisher"
	"socialblaster/internal/repo"
	"socialblaster/internal/usecase"
	"socialblaster/pkg/config"
	"socialblaster/pkg/logger"
	"socialblaster/pkg/middleware"
	"socialblaster/pkg/queue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "socialblaster/docs" // Swagger docs
)

// Deps carries the externally constructed collaborators. DB, Redis and the
// queue client may be nil: the composer runs fine on the in-memory store
// with rate limiting and event publishing disabled.
type Deps struct {
	PostRepo    repo.PostRepository
	UserRepo    repo.UserRepository
	DB          *gorm.DB
	RedisClient *redis.Client
	QueueClient *queue.Client
	MediaStore  media.Store
}

func Run(cfg *config.Config, log *logger.Logger, deps Deps) {
	registry := platform.NewRegistry()
	pub := publisher.NewSimulated(cfg.PublishMinDelay, cfg.PublishMaxDelay)

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(deps.PostRepo, registry, log)
	publishUseCase := usecase.NewPublishUseCase(deps.PostRepo, pub, deps.QueueClient, log)

	// Initialize HTTP handlers
	postHandler := apphttp.NewPostHandler(postUseCase, publishUseCase, log)
	platformHandler := apphttp.NewPlatformHandler(registry)
	uploadHandler := apphttp.NewUploadHandler(deps.MediaStore, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded files are served straight from disk when the local store is active
	if cfg.UploadDriver == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}

	api := r.Group("/api")
	if deps.RedisClient != nil {
		api.Use(middleware.RateLimitMiddleware(deps.RedisClient, 100, time.Minute))
	}

	{
		api.POST("/upload", uploadHandler.Upload)
		api.GET("/platforms", platformHandler.ListPlatforms)
		api.GET("/platforms/character-limit", platformHandler.CharacterLimit)
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.POST("/posts/:id/publish", postHandler.PublishPost)
		api.GET("/posts/:id/results", postHandler.GetResults)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("SocialBlaster API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	if deps.DB != nil {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("Error closing database: %v", err)
			}
		}
	}

	// Close Redis connection
	if deps.RedisClient != nil {
		if err := deps.RedisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if deps.QueueClient != nil {
		deps.QueueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("SocialBlaster API exited")
}
