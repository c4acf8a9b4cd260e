package constants

import "time"

const (
	DataFormate = "2006-01-02 15:04:05"

	DefaultLimit = 20
	MaxLimit     = 100

	MaxCommentLength      = 1000
	MaxGuestNameLength    = 100
	MaxSupportMessageSize = 2000
	MaxPostTitleLength    = 200

	UserCommentLimit   = 3
	UserCommentWindow  = time.Minute
	GuestCommentLimit  = 2
	GuestCommentWindow = 2 * time.Minute

	ReactionLockExpiry = 5 * time.Second

	CommentRateLimitKey = "comment_rate_limit:%s"
	ReactionLockKey     = "reaction_lock:%d:%d"

	ApiServiceName          = "blogsphere-api"
	NotificationServiceName = "blogsphere-notification"
)
