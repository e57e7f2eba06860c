package model

import (
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
)

type TaskApplication struct {
	ID             string                      `gorm:"primaryKey;size:36" json:"id"`
	TaskID         string                      `gorm:"size:36;not null;uniqueIndex:idx_application_task_applicant" json:"task_id"`
	ApplicantID    string                      `gorm:"size:64;not null;uniqueIndex:idx_application_task_applicant;index" json:"applicant_id"`
	Status         constants.ApplicationStatus `gorm:"type:varchar(20);not null" json:"status"`
	Message        string                      `gorm:"not null" json:"message"`
	ValidationCode string                      `gorm:"size:16" json:"-"`
	StartedAt      *time.Time                  `json:"started_at,omitempty"`
	CompletedAt    *time.Time                  `json:"completed_at,omitempty"`
	ValidatedAt    *time.Time                  `json:"validated_at,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
