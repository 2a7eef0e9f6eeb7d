package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"socialblaster/internal/entity"
)

// Store keeps the three record collections (users, posts, postResults) in
// process memory with a monotonically increasing identity counter per
// collection. It is constructed once at process start and shared by every
// concurrent publish attempt, so all record access happens under the mutex
// and reads return copies.
type Store struct {
	mu sync.Mutex

	users       map[int]*entity.User
	posts       map[int]*entity.Post
	postResults map[int]*entity.PostResult

	nextUserID       int
	nextPostID       int
	nextPostResultID int
}

func NewStore() *Store {
	return &Store{
		users:            make(map[int]*entity.User),
		posts:            make(map[int]*entity.Post),
		postResults:      make(map[int]*entity.PostResult),
		nextUserID:       1,
		nextPostID:       1,
		nextPostResultID: 1,
	}
}

func (s *Store) CreateUser(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++

	stored := *user
	s.users[stored.ID] = &stored
	return nil
}

func (s *Store) GetUser(id int) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (s *Store) GetUserByUsername(username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, entity.ErrNotFound)
}

func (s *Store) CreatePost(post *entity.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextPostID
	s.nextPostID++
	post.CreatedAt = time.Now()
	post.Status = entity.PostStatusDraft

	stored := copyPost(post)
	s.posts[stored.ID] = stored
	return nil
}

func (s *Store) GetPost(id int) (*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, entity.ErrNotFound)
	}
	return copyPost(post), nil
}

func (s *Store) GetUserPosts(userID int) ([]*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*entity.Post
	for _, post := range s.posts {
		if post.UserID == userID {
			posts = append(posts, copyPost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (s *Store) UpdatePostStatus(id int, status entity.PostStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %d: %w", id, entity.ErrNotFound)
	}
	if post.Status == status {
		// Idempotent under concurrent reconciliation
		return nil
	}
	if !entity.CanTransitionPost(post.Status, status) {
		return fmt.Errorf("post %d: cannot move from %s to %s: %w", id, post.Status, status, entity.ErrInvalidState)
	}
	post.Status = status
	return nil
}

func (s *Store) TransitionPost(id int, from, to entity.PostStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %d: %w", id, entity.ErrNotFound)
	}
	if post.Status != from {
		return fmt.Errorf("post %d is %s, expected %s: %w", id, post.Status, from, entity.ErrInvalidState)
	}
	if !entity.CanTransitionPost(from, to) {
		return fmt.Errorf("post %d: cannot move from %s to %s: %w", id, from, to, entity.ErrInvalidState)
	}
	post.Status = to
	return nil
}

func (s *Store) CreatePostResults(results []*entity.PostResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Single critical section: the whole batch becomes visible at once.
	for _, result := range results {
		result.ID = s.nextPostResultID
		s.nextPostResultID++
		result.Status = entity.ResultStatusPending

		stored := *result
		s.postResults[stored.ID] = &stored
	}
	return nil
}

func (s *Store) GetPostResults(postID int) ([]*entity.PostResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*entity.PostResult
	for _, result := range s.postResults {
		if result.PostID == postID {
			copied := *result
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (s *Store) UpdatePostResult(id int, status entity.ResultStatus, message, externalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.postResults[id]
	if !ok {
		return fmt.Errorf("post result %d: %w", id, entity.ErrNotFound)
	}
	if result.Status.IsTerminal() {
		return fmt.Errorf("post result %d already %s: %w", id, result.Status, entity.ErrInvalidState)
	}

	result.Status = status
	if message != "" {
		result.Message = message
	}
	if externalID != "" {
		result.ExternalID = externalID
	}
	if status == entity.ResultStatusSuccess {
		now := time.Now()
		result.PostedAt = &now
	}
	return nil
}

func copyPost(p *entity.Post) *entity.Post {
	copied := *p
	copied.Platforms = append([]string(nil), p.Platforms...)
	copied.MediaURLs = append([]string(nil), p.MediaURLs...)
	if p.ScheduledAt != nil {
		t := *p.ScheduledAt
		copied.ScheduledAt = &t
	}
	return &copied
}
