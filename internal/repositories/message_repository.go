package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "task-marketplace.com/task-marketplace/internal/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.TaskMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskMessage, error) {
	var msgs []model.TaskMessage
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at asc").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, taskID, receiverID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TaskMessage{}).
		Where("task_id = ? AND receiver_id = ? AND is_read = ?", taskID, receiverID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark messages read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskMessage{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}

func (r *MessageRepository) DeleteByTask(ctx context.Context, taskID string) error {
	if err := r.db.WithContext(ctx).Delete(&model.TaskMessage{}, "task_id = ?", taskID).Error; err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}
