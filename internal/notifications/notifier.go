// Package notifications provides mention event publishing and real-time delivery.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"

	"chirp/internal/middleware"
	"chirp/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPattern = "notifications:user:*"
)

// UserChannel returns the Redis channel carrying a user's notifications.
func UserChannel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// Notifier publishes notification payloads into Redis channels. It is the
// outbound edge of the service: delivery beyond the publish is best-effort
// and owned by whoever subscribes.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// EmitMention publishes a mention event to the mentioned user's channel.
// A nil Redis client makes this a no-op.
func (n *Notifier) EmitMention(ctx context.Context, ev models.MentionEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal mention event: %w", err)
	}
	if err := n.rdb.Publish(ctx, UserChannel(ev.MentionedUserID), payload).Err(); err != nil {
		middleware.MentionEmitFailures.Inc()
		return err
	}

	middleware.MentionEventsEmitted.Inc()
	middleware.Logger.InfoContext(ctx, "mention emitted",
		slog.String("event_id", ev.EventID),
		slog.Any("post_id", ev.PostID),
		slog.Any("source_author_id", ev.SourceAuthorID),
		slog.Any("mentioned_user_id", ev.MentionedUserID),
	)
	return nil
}

// StartPatternSubscriber subscribes to the per-user notification channels and
// calls onMessage for each incoming message with the channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPattern)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in pattern subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
