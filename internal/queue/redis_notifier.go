package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"
)

// RedisNotifier appends each notification to a per-user list and publishes it
// on the same key so online consumers get it immediately.
type RedisNotifier struct {
	client rueidis.Client
	prefix string
}

func NewRedisNotifier(client rueidis.Client, prefix string) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisNotifier) Key(userID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, userID)
}

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	key := r.Key(n.UserID)
	cmds := rueidis.Commands{
		r.client.B().Rpush().Key(key).Element(string(body)).Build(),
		r.client.B().Publish().Channel(key).Message(string(body)).Build(),
	}

	for _, resp := range r.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("push notification to %s: %w", key, err)
		}
	}
	return nil
}

// Pending reads the queued notifications of a user without consuming them.
func (r *RedisNotifier) Pending(ctx context.Context, userID string) ([]Notification, error) {
	cmd := r.client.B().Lrange().Key(r.Key(userID)).Start(0).Stop(-1).Build()
	items, err := r.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]Notification, 0, len(items))
	for _, item := range items {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
