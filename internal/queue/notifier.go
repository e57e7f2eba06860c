package queue

import (
	"context"
	"log/slog"
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
)

// Notification is an outbound event addressed to one user or audience.
type Notification struct {
	UserID    string                     `json:"user_id"`
	Kind      constants.NotificationKind `json:"kind"`
	Payload   map[string]string          `json:"payload,omitempty"`
	CreatedAt time.Time                  `json:"created_at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier only logs notifications. It is used when no broker is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	l.log.Info("notification", "user_id", n.UserID, "kind", n.Kind, "payload", n.Payload)
	return nil
}
