package persistent

import (
	"encoding/json"

	"socialblaster/internal/entity"
	"socialblaster/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		Content:     m.Content,
		ScheduledAt: m.ScheduledAt,
		CreatedAt:   m.CreatedAt,
		Status:      entity.PostStatus(m.Status),
	}

	if m.Platforms != "" {
		_ = json.Unmarshal([]byte(m.Platforms), &post.Platforms)
	}
	if m.MediaURLs != "" {
		_ = json.Unmarshal([]byte(m.MediaURLs), &post.MediaURLs)
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Content:     e.Content,
		ScheduledAt: e.ScheduledAt,
		CreatedAt:   e.CreatedAt,
		Status:      string(e.Status),
	}

	platforms, _ := json.Marshal(e.Platforms)
	post.Platforms = string(platforms)

	if len(e.MediaURLs) > 0 {
		mediaURLs, _ := json.Marshal(e.MediaURLs)
		post.MediaURLs = string(mediaURLs)
	}

	return post
}

func ToPostResultEntity(m *model.PostResultModel) *entity.PostResult {
	if m == nil {
		return nil
	}

	return &entity.PostResult{
		ID:         m.ID,
		PostID:     m.PostID,
		Platform:   m.Platform,
		Status:     entity.ResultStatus(m.Status),
		Message:    m.Message,
		ExternalID: m.ExternalID,
		PostedAt:   m.PostedAt,
	}
}

func ToPostResultModel(e *entity.PostResult) *model.PostResultModel {
	if e == nil {
		return nil
	}

	return &model.PostResultModel{
		ID:         e.ID,
		PostID:     e.PostID,
		Platform:   e.Platform,
		Status:     string(e.Status),
		Message:    e.Message,
		ExternalID: e.ExternalID,
		PostedAt:   e.PostedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:       m.ID,
		Username: m.Username,
		Password: m.Password,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:       e.ID,
		Username: e.Username,
		Password: e.Password,
	}
}
