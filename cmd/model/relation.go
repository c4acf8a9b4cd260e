package model

import "time"

// Follow records that FollowerId follows UserId.
type Follow struct {
	UserId     int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FollowerId int64     `gorm:"primaryKey;autoIncrement:false;index" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
