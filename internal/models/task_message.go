package model

import (
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
)

type TaskMessage struct {
	ID          string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string                `gorm:"size:36;not null;index" json:"task_id"`
	SenderID    string                `gorm:"size:64;not null" json:"sender_id"`
	ReceiverID  string                `gorm:"size:64;not null;index" json:"receiver_id"`
	Content     string                `gorm:"not null" json:"content"`
	MessageType constants.MessageType `gorm:"type:varchar(20);not null;default:TEXT" json:"message_type"`
	IsRead      bool                  `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time             `json:"created_at"`
}
