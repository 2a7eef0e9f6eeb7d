package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"socialblaster/internal/entity"
	"socialblaster/internal/usecase"
	"socialblaster/pkg/logger"

	"github.com/gin-gonic/gin"
)

// currentUserID stands in for an authenticated session; the composer is
// single-user for now.
const currentUserID = 1

type PostHandler struct {
	postUseCase    usecase.PostUseCase
	publishUseCase usecase.PublishUseCase
	logger         *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, publishUseCase usecase.PublishUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase:    postUseCase,
		publishUseCase: publishUseCase,
		logger:         logger,
	}
}

type CreatePostRequest struct {
	Content     string     `json:"content" binding:"required"`
	Platforms   []string   `json:"platforms" binding:"required"`
	MediaURLs   []string   `json:"mediaUrls"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a draft post targeting one or more platforms
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        post body CreatePostRequest true "Post content and target platforms"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(currentUserID, req.Content, req.Platforms, req.MediaURLs, req.ScheduledAt)
	if err != nil {
		h.respondError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary      List posts
// @Description  List the current user's posts in creation order
// @Tags         posts
// @Produce      json
// @Success      200  {array}  entity.Post
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListPosts(currentUserID)
	if err != nil {
		h.respondError(c, err, "Failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []*entity.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPost(id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// PublishPost godoc
// @Summary      Publish a post
// @Description  Fan out one publish attempt per selected platform. Returns the pending results immediately; poll the results endpoint for progress.
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /posts/{id}/publish [post]
func (h *PostHandler) PublishPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	results, err := h.publishUseCase.Publish(id)
	if err != nil {
		h.respondError(c, err, "Failed to start publishing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Publishing started",
		"results": results,
	})
}

// GetResults godoc
// @Summary      Get publish results
// @Description  Current per-platform publish status for a post, in platform selection order
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {array}  entity.PostResult
// @Router       /posts/{id}/results [get]
func (h *PostHandler) GetResults(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	results, err := h.postUseCase.GetResults(id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch post results")
		return
	}
	if results == nil {
		results = []*entity.PostResult{}
	}
	c.JSON(http.StatusOK, results)
}

func (h *PostHandler) postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return 0, false
	}
	return id, true
}

func (h *PostHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
