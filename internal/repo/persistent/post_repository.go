package persistent

import (
	"errors"
	"fmt"
	"time"

	"socialblaster/internal/entity"
	"socialblaster/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the postgres-backed repository. Status transitions run inside a
// transaction with a SELECT ... FOR UPDATE on the affected row, so two
// concurrent reconcilers cannot both observe the pre-transition status.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(user *entity.User) error {
	userModel := ToUserModel(user)
	userModel.ID = 0
	if err := s.db.Create(userModel).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (s *Store) GetUser(id int) (*entity.User, error) {
	var userModel model.UserModel
	if err := s.db.First(&userModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (s *Store) GetUserByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := s.db.First(&userModel, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (s *Store) CreatePost(post *entity.Post) error {
	post.Status = entity.PostStatusDraft
	post.CreatedAt = time.Now()

	postModel := ToPostModel(post)
	postModel.ID = 0
	if err := s.db.Create(postModel).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (s *Store) GetPost(id int) (*entity.Post, error) {
	var postModel model.PostModel
	if err := s.db.First(&postModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (s *Store) GetUserPosts(userID int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (s *Store) UpdatePostStatus(id int, status entity.PostStatus) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var postModel model.PostModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&postModel, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post %d: %w", id, entity.ErrNotFound)
			}
			return err
		}

		current := entity.PostStatus(postModel.Status)
		if current == status {
			return nil
		}
		if !entity.CanTransitionPost(current, status) {
			return fmt.Errorf("post %d: cannot move from %s to %s: %w", id, current, status, entity.ErrInvalidState)
		}

		return tx.Model(&postModel).Update("status", string(status)).Error
	})
}

func (s *Store) TransitionPost(id int, from, to entity.PostStatus) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var postModel model.PostModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&postModel, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post %d: %w", id, entity.ErrNotFound)
			}
			return err
		}

		current := entity.PostStatus(postModel.Status)
		if current != from {
			return fmt.Errorf("post %d is %s, expected %s: %w", id, current, from, entity.ErrInvalidState)
		}
		if !entity.CanTransitionPost(from, to) {
			return fmt.Errorf("post %d: cannot move from %s to %s: %w", id, from, to, entity.ErrInvalidState)
		}

		return tx.Model(&postModel).Update("status", string(to)).Error
	})
}

func (s *Store) CreatePostResults(results []*entity.PostResult) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, result := range results {
			result.Status = entity.ResultStatusPending

			resultModel := ToPostResultModel(result)
			resultModel.ID = 0
			if err := tx.Create(resultModel).Error; err != nil {
				return fmt.Errorf("failed to create post result for %s: %w", result.Platform, err)
			}
			*result = *ToPostResultEntity(resultModel)
		}
		return nil
	})
}

func (s *Store) GetPostResults(postID int) ([]*entity.PostResult, error) {
	var resultModels []model.PostResultModel
	if err := s.db.Where("post_id = ?", postID).Order("id ASC").Find(&resultModels).Error; err != nil {
		return nil, err
	}

	results := make([]*entity.PostResult, len(resultModels))
	for i := range resultModels {
		results[i] = ToPostResultEntity(&resultModels[i])
	}
	return results, nil
}

func (s *Store) UpdatePostResult(id int, status entity.ResultStatus, message, externalID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var resultModel model.PostResultModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&resultModel, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post result %d: %w", id, entity.ErrNotFound)
			}
			return err
		}

		if entity.ResultStatus(resultModel.Status).IsTerminal() {
			return fmt.Errorf("post result %d already %s: %w", id, resultModel.Status, entity.ErrInvalidState)
		}

		updates := map[string]interface{}{"status": string(status)}
		if message != "" {
			updates["message"] = message
		}
		if externalID != "" {
			updates["external_id"] = externalID
		}
		if status == entity.ResultStatusSuccess {
			updates["posted_at"] = time.Now()
		}

		return tx.Model(&resultModel).Updates(updates).Error
	})
}
