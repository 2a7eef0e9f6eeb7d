package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialblaster/internal/entity"
	"socialblaster/internal/usecase"
	"socialblaster/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostUseCase is a mock implementation of usecase.PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(userID int, content string, platformIDs []string, mediaURLs []string, scheduledAt *time.Time) (*entity.Post, error) {
	args := m.Called(userID, content, platformIDs, mediaURLs, scheduledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(id int) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(userID int) ([]*entity.Post, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetResults(postID int) ([]*entity.PostResult, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PostResult), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

// MockPublishUseCase is a mock implementation of usecase.PublishUseCase
type MockPublishUseCase struct {
	mock.Mock
}

func (m *MockPublishUseCase) Publish(postID int) ([]*entity.PostResult, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PostResult), args.Error(1)
}

var _ usecase.PublishUseCase = (*MockPublishUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newHandler() (*PostHandler, *MockPostUseCase, *MockPublishUseCase) {
	mockPost := new(MockPostUseCase)
	mockPublish := new(MockPublishUseCase)
	handler := NewPostHandler(mockPost, mockPublish, logger.New())
	return handler, mockPost, mockPublish
}

func TestCreatePost_Success(t *testing.T) {
	handler, mockPost, _ := newHandler()
	router := setupTestRouter()
	router.POST("/api/posts", handler.CreatePost)

	expected := &entity.Post{
		ID:        1,
		UserID:    1,
		Content:   "Hello world",
		Platforms: []string{"twitter", "threads"},
		Status:    entity.PostStatusDraft,
	}
	mockPost.On("CreatePost", 1, "Hello world", []string{"twitter", "threads"}, []string(nil), (*time.Time)(nil)).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"content":   "Hello world",
		"platforms": []string{"twitter", "threads"},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got entity.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, entity.PostStatusDraft, got.Status)
	mockPost.AssertExpectations(t)
}

func TestCreatePost_MissingContent(t *testing.T) {
	handler, _, _ := newHandler()
	router := setupTestRouter()
	router.POST("/api/posts", handler.CreatePost)

	body, _ := json.Marshal(map[string]interface{}{
		"platforms": []string{"twitter"},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost_UnknownPlatform(t *testing.T) {
	handler, mockPost, _ := newHandler()
	router := setupTestRouter()
	router.POST("/api/posts", handler.CreatePost)

	mockPost.On("CreatePost", 1, "Hello", []string{"myspace"}, []string(nil), (*time.Time)(nil)).
		Return(nil, fmt.Errorf("unknown platform %q: %w", "myspace", entity.ErrValidation))

	body, _ := json.Marshal(map[string]interface{}{
		"content":   "Hello",
		"platforms": []string{"myspace"},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "myspace")
}

func TestGetPost_Success(t *testing.T) {
	handler, mockPost, _ := newHandler()
	router := setupTestRouter()
	router.GET("/api/posts/:id", handler.GetPost)

	mockPost.On("GetPost", 5).Return(&entity.Post{ID: 5, Content: "hi", Status: entity.PostStatusDraft}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPost_NotFound(t *testing.T) {
	handler, mockPost, _ := newHandler()
	router := setupTestRouter()
	router.GET("/api/posts/:id", handler.GetPost)

	mockPost.On("GetPost", 404).Return(nil, fmt.Errorf("post 404: %w", entity.ErrNotFound))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/404", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPost_InvalidID(t *testing.T) {
	handler, _, _ := newHandler()
	router := setupTestRouter()
	router.GET("/api/posts/:id", handler.GetPost)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishPost_Success(t *testing.T) {
	handler, _, mockPublish := newHandler()
	router := setupTestRouter()
	router.POST("/api/posts/:id/publish", handler.PublishPost)

	results := []*entity.PostResult{
		{ID: 1, PostID: 7, Platform: "twitter", Status: entity.ResultStatusPending, Message: "Publishing in progress..."},
		{ID: 2, PostID: 7, Platform: "threads", Status: entity.ResultStatusPending, Message: "Publishing in progress..."},
	}
	mockPublish.On("Publish", 7).Return(results, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts/7/publish", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string               `json:"message"`
		Results []*entity.PostResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Publishing started", body.Message)
	require.Len(t, body.Results, 2)
	assert.Equal(t, entity.ResultStatusPending, body.Results[0].Status)
	mockPublish.AssertExpectations(t)
}

func TestPublishPost_NotFound(t *testing.T) {
	handler, _, mockPublish := newHandler()
	router := setupTestRouter()
	router.POST("/api/posts/:id/publish", handler.PublishPost)

	mockPublish.On("Publish", 99).Return(nil, fmt.Errorf("post 99: %w", entity.ErrNotFound))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts/99/publish", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublishPost_AlreadyPublishing(t *testing.T) {
	handler, _, mockPublish := newHandler()
	router := setupTestRouter()
	router.POST("/api/posts/:id/publish", handler.PublishPost)

	mockPublish.On("Publish", 7).Return(nil, fmt.Errorf("post 7 is posting: %w", entity.ErrInvalidState))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts/7/publish", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetResults_Success(t *testing.T) {
	handler, mockPost, _ := newHandler()
	router := setupTestRouter()
	router.GET("/api/posts/:id/results", handler.GetResults)

	mockPost.On("GetResults", 7).Return([]*entity.PostResult{
		{ID: 1, PostID: 7, Platform: "twitter", Status: entity.ResultStatusSuccess, ExternalID: "twitter_ext"},
		{ID: 2, PostID: 7, Platform: "threads", Status: entity.ResultStatusPending},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/7/results", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var results []*entity.PostResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "twitter", results[0].Platform)
}

func TestGetResults_EmptyIsJSONArray(t *testing.T) {
	handler, mockPost, _ := newHandler()
	router := setupTestRouter()
	router.GET("/api/posts/:id/results", handler.GetResults)

	mockPost.On("GetResults", 8).Return([]*entity.PostResult(nil), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/8/results", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListPosts_Success(t *testing.T) {
	handler, mockPost, _ := newHandler()
	router := setupTestRouter()
	router.GET("/api/posts", handler.ListPosts)

	mockPost.On("ListPosts", 1).Return([]*entity.Post{
		{ID: 1, Content: "first", Status: entity.PostStatusCompleted},
		{ID: 2, Content: "second", Status: entity.PostStatusDraft},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var posts []*entity.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Len(t, posts, 2)
}
