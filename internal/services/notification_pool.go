package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
	"task-marketplace.com/task-marketplace/internal/queue"
)

// NotificationPool delivers notifications on background workers so that a
// slow or failing broker never blocks or fails a state transition.
type NotificationPool struct {
	queue    chan queue.Notification
	wg       sync.WaitGroup
	notifier queue.Notifier
	log      *slog.Logger
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewNotificationPool(notifier queue.Notifier, log *slog.Logger, workers, queueSize int) *NotificationPool {
	p := &NotificationPool{
		queue:    make(chan queue.Notification, queueSize),
		notifier: notifier,
		log:      log,
		timeout:  5 * time.Second,
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Notify enqueues without blocking. A full queue drops the notification.
func (p *NotificationPool) Notify(userID string, kind constants.NotificationKind, payload map[string]string) bool {
	n := queue.Notification{
		UserID:    userID,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.log.Warn("notification dropped after shutdown", "user_id", userID, "kind", kind)
		return false
	}

	select {
	case p.queue <- n:
		return true
	default:
		p.log.Warn("notification queue full, dropping", "user_id", userID, "kind", kind)
		return false
	}
}

func (p *NotificationPool) worker(workerID int) {
	defer p.wg.Done()

	p.log.Debug("notification worker started", "worker", workerID)

	for n := range p.queue {
		p.deliver(workerID, n)
	}

	p.log.Debug("notification worker stopped", "worker", workerID)
}

func (p *NotificationPool) deliver(workerID int, n queue.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.notifier.Notify(ctx, n); err != nil {
		p.log.Error("notification delivery failed",
			"worker", workerID,
			"user_id", n.UserID,
			"kind", n.Kind,
			"error", err,
		)
	}
}

// Shutdown stops accepting notifications and waits for queued ones to drain
// or for ctx to expire.
func (p *NotificationPool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("notification pool shut down cleanly")
	case <-ctx.Done():
		p.log.Warn("notification pool shutdown timed out")
	}
}
