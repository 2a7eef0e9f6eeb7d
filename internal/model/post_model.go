package model

import "time"

type PostModel struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int        `gorm:"not null;index" json:"user_id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Platforms   string     `gorm:"type:jsonb;not null" json:"platforms"`
	MediaURLs   string     `gorm:"column:media_urls;type:jsonb" json:"media_urls"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	Status      string     `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
}

func (PostModel) TableName() string {
	return "posts"
}

type PostResultModel struct {
	ID         int        `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID     int        `gorm:"not null;index" json:"post_id"`
	Platform   string     `gorm:"type:varchar(50);not null" json:"platform"`
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`
	Message    string     `gorm:"type:text" json:"message"`
	ExternalID string     `gorm:"type:varchar(255)" json:"external_id"`
	PostedAt   *time.Time `json:"posted_at"`
}

func (PostResultModel) TableName() string {
	return "post_results"
}
