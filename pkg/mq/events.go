package mq

import (
	"time"

	"github.com/google/uuid"
)

// ReactionEvent 点赞/点踩事件
type ReactionEvent struct {
	EventID      string `json:"event_id"`
	PostID       int64  `json:"post_id"`
	PostAuthorID int64  `json:"post_author_id"`
	UserID       int64  `json:"user_id"`   // 操作用户ID
	Username     string `json:"username"`
	Kind         string `json:"kind"`      // like or dislike
	Action       string `json:"action"`    // liked, unliked, disliked, undisliked
	Timestamp    int64  `json:"timestamp"` // 时间戳
}

// CommentEvent 评论事件
type CommentEvent struct {
	EventID         string `json:"event_id"`
	Type            string `json:"type"` // created or approved
	CommentID       int64  `json:"comment_id"`
	PostID          int64  `json:"post_id"`
	PostAuthorID    int64  `json:"post_author_id"`
	UserID          *int64 `json:"user_id,omitempty"` // nil for guests
	AuthorName      string `json:"author_name"`
	ParentCommentID *int64 `json:"parent_comment_id,omitempty"`
	Status          string `json:"status"`
	Timestamp       int64  `json:"timestamp"`
}

const (
	CommentCreated  = "created"
	CommentApproved = "approved"
)

// 常量定义
const (
	// 交换机名称
	ReactionEventExchange = "reaction_events"
	CommentEventExchange  = "comment_events"

	// 队列名称
	ReactionEventQueue = "reaction_event_queue"
	CommentEventQueue  = "comment_event_queue"
)

var topology = []struct {
	exchange string
	queue    string
}{
	{ReactionEventExchange, ReactionEventQueue},
	{CommentEventExchange, CommentEventQueue},
}

func NewEventID() string {
	return uuid.New().String()
}

func Now() int64 {
	return time.Now().Unix()
}
