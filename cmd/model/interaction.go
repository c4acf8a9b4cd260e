package model

import "time"

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// Added is the action name reported when a reaction row gets created,
// Removed the one reported when it gets toggled off.
func (k ReactionKind) Added() string   { return string(k) + "d" }
func (k ReactionKind) Removed() string { return "un" + string(k) + "d" }

// Like and Dislike are pure join rows; the composite primary key keeps
// a (post, user) pair unique within each table.
type Like struct {
	PostId    int64     `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	UserId    int64     `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }

type Dislike struct {
	PostId    int64     `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	UserId    int64     `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Dislike) TableName() string { return "dislikes" }

type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)

func (s CommentStatus) Valid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

// Comment belongs to a post. UserId is nil for guests, whose name and
// email are stored inline.
type Comment struct {
	CommentId       int64         `gorm:"primaryKey;autoIncrement" json:"comment_id"`
	PostId          int64         `gorm:"not null;index" json:"post_id"`
	UserId          *int64        `gorm:"index" json:"user_id"`
	AuthorName      string        `gorm:"size:100" json:"author_name"`
	AuthorEmail     string        `gorm:"size:255;index" json:"-"`
	Content         string        `gorm:"type:text;not null" json:"content"`
	ParentCommentId *int64        `gorm:"index" json:"parent_comment_id"`
	Status          CommentStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

// CommentThread is a top-level comment with its direct replies.
type CommentThread struct {
	Comment
	Replies []*Comment `json:"replies"`
}
