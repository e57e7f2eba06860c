package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskFilter struct {
	Type        *constants.TaskType
	Status      *constants.TaskStatus
	UserID      *string
	CategoryID  *string
	DurationMin *int
	DurationMax *int
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = constants.StatusDraft
	}
	task.Version = 1

	if err := r.db.WithContext(ctx).Omit("Address").Create(task).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, apperrors.ErrTaskNotFound)
	}
	return &task, nil
}

func (r *TaskRepository) FindWithAddress(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Preload("Address").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, apperrors.ErrTaskNotFound)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Preload("Address").Order("created_at desc")

	if f.Type != nil {
		query = query.Where("type = ?", *f.Type)
	}
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.DurationMin != nil {
		query = query.Where("estimated_duration >= ?", *f.DurationMin)
	}
	if f.DurationMax != nil {
		query = query.Where("estimated_duration <= ?", *f.DurationMax)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update writes the mutable fields of task guarded by its version.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":                     task.Title,
			"description":               task.Description,
			"address_id":                task.AddressID,
			"category_id":               task.CategoryID,
			"estimated_duration":        task.EstimatedDuration,
			"file_id":                   task.FileID,
			"calculated_price_in_cents": task.CalculatedPriceInCents,
			"status":                    task.Status,
			"updated_at":                time.Now().UTC(),
			"version":                   gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}

// Transition moves the task to `to` only while its status is one of `from`.
// Extra columns are written in the same statement.
func (r *TaskRepository) Transition(
	ctx context.Context,
	id string,
	from []constants.TaskStatus,
	to constants.TaskStatus,
	extra map[string]interface{},
) error {
	values := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
		"version":    gorm.Expr("version + 1"),
	}
	for k, v := range extra {
		values[k] = v
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("transition task: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		task, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return apperrors.InvalidStateTransition(
			fmt.Sprintf("task %s cannot move from %s to %s", id, task.Status, to),
		)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
