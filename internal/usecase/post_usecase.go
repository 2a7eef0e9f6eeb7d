package usecase

import (
	"fmt"
	"strings"
	"time"

	"socialblaster/internal/entity"
	"socialblaster/internal/platform"
	"socialblaster/internal/repo"
	"socialblaster/pkg/logger"
)

type PostUseCase interface {
	CreatePost(userID int, content string, platformIDs []string, mediaURLs []string, scheduledAt *time.Time) (*entity.Post, error)
	GetPost(id int) (*entity.Post, error)
	ListPosts(userID int) ([]*entity.Post, error)
	GetResults(postID int) ([]*entity.PostResult, error)
}

type postUseCase struct {
	postRepo repo.PostRepository
	registry *platform.Registry
	logger   *logger.Logger
}

func NewPostUseCase(postRepo repo.PostRepository, registry *platform.Registry, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		registry: registry,
		logger:   logger,
	}
}

func (uc *postUseCase) CreatePost(userID int, content string, platformIDs []string, mediaURLs []string, scheduledAt *time.Time) (*entity.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content must not be empty: %w", entity.ErrValidation)
	}
	if len(platformIDs) == 0 {
		return nil, fmt.Errorf("at least one platform is required: %w", entity.ErrValidation)
	}

	seen := make(map[string]bool, len(platformIDs))
	for _, id := range platformIDs {
		if _, ok := uc.registry.Lookup(id); !ok {
			return nil, fmt.Errorf("unknown platform %q: %w", id, entity.ErrValidation)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate platform %q: %w", id, entity.ErrValidation)
		}
		seen[id] = true
	}

	post := &entity.Post{
		UserID:      userID,
		Content:     content,
		Platforms:   platformIDs,
		MediaURLs:   mediaURLs,
		ScheduledAt: scheduledAt,
	}

	if err := uc.postRepo.CreatePost(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("created post %d for user %d targeting %v", post.ID, userID, platformIDs)
	return post, nil
}

func (uc *postUseCase) GetPost(id int) (*entity.Post, error) {
	return uc.postRepo.GetPost(id)
}

func (uc *postUseCase) ListPosts(userID int) ([]*entity.Post, error) {
	return uc.postRepo.GetUserPosts(userID)
}

func (uc *postUseCase) GetResults(postID int) ([]*entity.PostResult, error) {
	return uc.postRepo.GetPostResults(postID)
}
