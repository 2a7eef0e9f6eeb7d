package main

import (
	"errors"

	"socialblaster/internal/app"
	"socialblaster/internal/entity"
	"socialblaster/internal/media"
	"socialblaster/internal/repo"
	"socialblaster/internal/repo/memory"
	"socialblaster/internal/repo/persistent"
	"socialblaster/pkg/cache"
	"socialblaster/pkg/config"
	"socialblaster/pkg/database"
	"socialblaster/pkg/logger"
	"socialblaster/pkg/queue"
	"socialblaster/pkg/s3"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           SocialBlaster API
// @version         1.0
// @description     Cross-posting composer: write once, publish everywhere.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	deps := app.Deps{}

	switch cfg.StorageDriver {
	case "postgres":
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			panic(err)
		}
		store := persistent.NewStore(db)
		deps.DB = db
		deps.PostRepo = store
		deps.UserRepo = store
	default:
		store := memory.NewStore()
		deps.PostRepo = store
		deps.UserRepo = store
	}

	seedDefaultUser(deps.UserRepo, log)

	if cfg.RedisHost != "" {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Warn("Failed to connect to redis: %v (continuing without rate limiting)", err)
		} else {
			deps.RedisClient = redisClient
		}
	}

	if cfg.RabbitMQHost != "" {
		queueClient, err := queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		} else {
			deps.QueueClient = queueClient
		}
	}

	switch cfg.UploadDriver {
	case "s3":
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		deps.MediaStore = media.NewS3Store(s3Client)
	default:
		diskStore, err := media.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Error("Failed to create upload dir: %v", err)
			panic(err)
		}
		deps.MediaStore = diskStore
	}

	app.Run(cfg, log, deps)
}

// seedDefaultUser makes sure the single composer user exists; the API is
// single-user until real accounts land.
func seedDefaultUser(users repo.UserRepository, log *logger.Logger) {
	if _, err := users.GetUserByUsername("demo"); err == nil {
		return
	} else if !errors.Is(err, entity.ErrNotFound) {
		log.Warn("Failed to look up default user: %v", err)
		return
	}

	user := &entity.User{Username: "demo", Password: "demo"}
	if err := users.CreateUser(user); err != nil {
		log.Warn("Failed to seed default user: %v", err)
		return
	}
	log.Info("Seeded default user %q with id %d", user.Username, user.ID)
}
