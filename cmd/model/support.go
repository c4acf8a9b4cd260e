package model

import "time"

type SupportMessage struct {
	MessageId  int64      `gorm:"primaryKey;autoIncrement" json:"message_id"`
	UserId     *int64     `json:"user_id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;not null" json:"email"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	Resolved   bool       `gorm:"not null;default:false;index" json:"resolved"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

func (SupportMessage) TableName() string { return "support_messages" }
