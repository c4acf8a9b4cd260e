package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishReactionEvent(ctx context.Context, event *ReactionEvent) error
	PublishCommentEvent(ctx context.Context, event *CommentEvent) error
}

// 确保Producer实现MessageProducer接口
var _ MessageProducer = (*Producer)(nil)

// NopProducer drops every event. Used when RabbitMQ is not configured.
type NopProducer struct{}

func (NopProducer) PublishReactionEvent(context.Context, *ReactionEvent) error { return nil }

func (NopProducer) PublishCommentEvent(context.Context, *CommentEvent) error { return nil }
