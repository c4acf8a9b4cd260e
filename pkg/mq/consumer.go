package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type ReactionEventHandler interface {
	HandleReactionEvent(ctx context.Context, event *ReactionEvent) error
}

type CommentEventHandler interface {
	HandleCommentEvent(ctx context.Context, event *CommentEvent) error
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{conn: conn, channel: ch}, nil
}

func (c *Consumer) ConsumeReactionEvents(ctx context.Context, handler ReactionEventHandler) error {
	return c.consume(ctx, ReactionEventQueue, decodeReaction(handler))
}

func (c *Consumer) ConsumeCommentEvents(ctx context.Context, handler CommentEventHandler) error {
	return c.consume(ctx, CommentEventQueue, decodeComment(handler))
}

func decodeReaction(h ReactionEventHandler) func(context.Context, []byte) error {
	return func(ctx context.Context, body []byte) error {
		var event ReactionEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return errMalformed{err}
		}
		return h.HandleReactionEvent(ctx, &event)
	}
}

func decodeComment(h CommentEventHandler) func(context.Context, []byte) error {
	return func(ctx context.Context, body []byte) error {
		var event CommentEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return errMalformed{err}
		}
		return h.HandleCommentEvent(ctx, &event)
	}
}

func (c *Consumer) consume(ctx context.Context, queue string, handle func(context.Context, []byte) error) error {
	msgs, err := c.channel.Consume(
		queue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Infof("%s consumer context cancelled", queue)
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Infof("%s consumer channel closed", queue)
					return
				}
				dispatch(ctx, queue, d, handle)
			}
		}
	}()

	return nil
}

type errMalformed struct{ error }

// dispatch acks handled messages, drops malformed ones and requeues the rest.
func dispatch(ctx context.Context, queue string, d amqp091.Delivery, handle func(context.Context, []byte) error) {
	err := handle(ctx, d.Body)
	switch err.(type) {
	case nil:
		d.Ack(false) // 确认消息
		hlog.CtxDebugf(ctx, "Successfully processed %s message", queue)
	case errMalformed:
		hlog.Errorf("Failed to unmarshal %s message: %v", queue, err)
		d.Nack(false, false) // 拒绝消息，不重新入队
	default:
		hlog.Errorf("Failed to handle %s message: %v", queue, err)
		d.Nack(false, true) // 拒绝消息，重新入队
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
