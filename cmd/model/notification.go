package model

import "time"

const (
	NotificationLike    = "like"
	NotificationDislike = "dislike"
	NotificationComment = "comment"
)

type Notification struct {
	NotificationId int64     `gorm:"primaryKey;autoIncrement" json:"notification_id"`
	ReceiverId     int64     `gorm:"not null;index" json:"receiver_id"`
	SenderId       *int64    `json:"sender_id"`
	Type           string    `gorm:"size:20;not null" json:"type"`
	PostId         int64     `json:"post_id"`
	CommentId      *int64    `json:"comment_id"`
	EventId        string    `gorm:"size:36;uniqueIndex" json:"event_id"`
	Content        string    `gorm:"size:255" json:"content"`
	IsRead         bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
