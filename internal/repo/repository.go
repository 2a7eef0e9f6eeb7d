package repo

import "socialblaster/internal/entity"

// UserRepository owns the users collection.
type UserRepository interface {
	CreateUser(user *entity.User) error
	GetUser(id int) (*entity.User, error)
	GetUserByUsername(username string) (*entity.User, error)
}

// PostRepository owns posts and their per-platform publish results. Status
// transitions go through UpdatePostStatus / UpdatePostResult only, so the
// forward-only lifecycle invariants are enforced in one place.
type PostRepository interface {
	// CreatePost stores a new post in draft status, assigning its id and
	// creation time.
	CreatePost(post *entity.Post) error
	GetPost(id int) (*entity.Post, error)
	// GetUserPosts returns the user's posts in creation order.
	GetUserPosts(userID int) ([]*entity.Post, error)
	// UpdatePostStatus moves a post forward along draft -> posting ->
	// completed. A same-status update is a no-op; a backward move returns
	// entity.ErrInvalidState; an unknown id returns entity.ErrNotFound.
	UpdatePostStatus(id int, status entity.PostStatus) error
	// TransitionPost is the compare-and-swap form of UpdatePostStatus: it
	// moves the post from exactly `from` to `to` in one atomic step, and
	// returns entity.ErrInvalidState when the current status is anything
	// else. Of any number of concurrent callers, exactly one wins.
	TransitionPost(id int, from, to entity.PostStatus) error

	// CreatePostResults stores the whole batch atomically: either every
	// result is visible afterwards or none is.
	CreatePostResults(results []*entity.PostResult) error
	// GetPostResults returns a post's results in creation order.
	GetPostResults(postID int) ([]*entity.PostResult, error)
	// UpdatePostResult records a publish outcome. While the result is
	// pending the message stays mutable; a transition to success or failed
	// is terminal and any later update returns entity.ErrInvalidState.
	// PostedAt is set when the result transitions to success.
	UpdatePostResult(id int, status entity.ResultStatus, message, externalID string) error
}
