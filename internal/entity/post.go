package entity

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPosting   PostStatus = "posting"
	PostStatusCompleted PostStatus = "completed"
)

// postStatusOrder defines the forward-only lifecycle draft -> posting -> completed.
var postStatusOrder = map[PostStatus]int{
	PostStatusDraft:     0,
	PostStatusPosting:   1,
	PostStatusCompleted: 2,
}

// CanTransitionPost reports whether a post may move from one status to the
// next. Same-status transitions are allowed so concurrent reconcilers can
// treat a repeated completion as a no-op.
func CanTransitionPost(from, to PostStatus) bool {
	fromRank, ok := postStatusOrder[from]
	if !ok {
		return false
	}
	toRank, ok := postStatusOrder[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

type ResultStatus string

const (
	ResultStatusPending ResultStatus = "pending"
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusFailed  ResultStatus = "failed"
)

// IsTerminal reports whether a result status allows no further transitions.
func (s ResultStatus) IsTerminal() bool {
	return s == ResultStatusSuccess || s == ResultStatusFailed
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

type Post struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	Content     string     `json:"content"`
	Platforms   []string   `json:"platforms"`
	MediaURLs   []string   `json:"mediaUrls"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      PostStatus `json:"status"`
}

// PostResult is one platform's publish attempt for one post. Results are
// created in creation order matching the post's platform selection and never
// added to or removed from after the fan-out begins.
type PostResult struct {
	ID         int          `json:"id"`
	PostID     int          `json:"postId"`
	Platform   string       `json:"platform"`
	Status     ResultStatus `json:"status"`
	Message    string       `json:"message"`
	ExternalID string       `json:"externalId"`
	PostedAt   *time.Time   `json:"postedAt"`
}
