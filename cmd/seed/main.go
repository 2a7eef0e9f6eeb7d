package main

import (
	"errors"
	"fmt"
	"time"

	"socialblaster/internal/entity"
	"socialblaster/internal/repo/persistent"
	"socialblaster/pkg/config"
	"socialblaster/pkg/database"
	"socialblaster/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	store := persistent.NewStore(db)

	if err := seedDatabase(store, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(store *persistent.Store, log *logger.Logger) error {
	user, err := store.GetUserByUsername("demo")
	if errors.Is(err, entity.ErrNotFound) {
		user = &entity.User{Username: "demo", Password: "demo"}
		if err := store.CreateUser(user); err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}
		log.Info("Created user: %s", user.Username)
	} else if err != nil {
		return fmt.Errorf("failed to look up demo user: %w", err)
	} else {
		log.Info("User %s already exists, skipping", user.Username)
	}

	existing, err := store.GetUserPosts(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}
	if len(existing) > 0 {
		log.Info("User %s already has %d posts, skipping sample posts", user.Username, len(existing))
		return nil
	}

	samplePosts := []*entity.Post{
		{
			UserID:    user.ID,
			Content:   "Hello world! Testing the cross-posting composer.",
			Platforms: []string{"twitter", "threads"},
			Status:    entity.PostStatusDraft,
		},
		{
			UserID:    user.ID,
			Content:   "Launch day is coming. Stay tuned for the big announcement!",
			Platforms: []string{"twitter", "facebook", "threads", "pinterest"},
			Status:    entity.PostStatusDraft,
		},
		{
			UserID:    user.ID,
			Content:   "Behind the scenes of our latest shoot.",
			Platforms: []string{"tiktok", "snapchat"},
			MediaURLs: []string{"/uploads/sample-clip.mp4"},
			Status:    entity.PostStatusDraft,
		},
	}

	for _, post := range samplePosts {
		scheduled := time.Now().Add(24 * time.Hour)
		if len(post.MediaURLs) > 0 {
			post.ScheduledAt = &scheduled
		}
		if err := store.CreatePost(post); err != nil {
			log.Error("Failed to create sample post: %v", err)
			continue
		}
		log.Info("Created draft post %d for %d platform(s)", post.ID, len(post.Platforms))
	}

	return nil
}
