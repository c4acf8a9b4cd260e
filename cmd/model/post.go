package model

import "time"

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

// DislikePolicy controls whether readers may dislike a post.
type DislikePolicy string

const (
	DislikeEnabled  DislikePolicy = "enabled"
	DislikeDisabled DislikePolicy = "disabled"
	DislikePending  DislikePolicy = "pending"
)

func (p DislikePolicy) Valid() bool {
	switch p {
	case DislikeEnabled, DislikeDisabled, DislikePending:
		return true
	}
	return false
}

type Post struct {
	PostId        int64         `gorm:"primaryKey;autoIncrement" json:"post_id"`
	UserId        int64         `gorm:"not null;index" json:"user_id"`
	CategoryId    *int64        `gorm:"index" json:"category_id"`
	Title         string        `gorm:"size:200;not null" json:"title"`
	Content       string        `gorm:"type:text" json:"content"`
	Status        PostStatus    `gorm:"size:16;not null;default:'draft';index" json:"status"`
	DislikePolicy DislikePolicy `gorm:"size:16;not null;default:'enabled'" json:"dislike_policy"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// PostInfo is a post with the counters derived at read time.
type PostInfo struct {
	Post
	Tags         []string `json:"tags"`
	LikeCount    int64    `json:"like_count"`
	DislikeCount int64    `json:"dislike_count"`
	CommentCount int64    `json:"comment_count"`
}

type Category struct {
	CategoryId  int64     `gorm:"primaryKey;autoIncrement" json:"category_id"`
	Name        string    `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }

type Tag struct {
	TagId int64  `gorm:"primaryKey;autoIncrement" json:"tag_id"`
	Name  string `gorm:"size:64;not null;uniqueIndex" json:"name"`
}

func (Tag) TableName() string { return "tags" }

type PostTag struct {
	PostId int64 `gorm:"primaryKey;autoIncrement:false"`
	TagId  int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (PostTag) TableName() string { return "post_tags" }
