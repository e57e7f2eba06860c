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

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create relies on the (task_id, applicant_id) unique index; a concurrent
// duplicate surfaces as ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.TaskApplication) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Omit("Task").Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateApplication
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.TaskApplication, error) {
	var app model.TaskApplication
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByTaskAndApplicant(ctx context.Context, taskID, applicantID string) (*model.TaskApplication, error) {
	var app model.TaskApplication
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND applicant_id = ?", taskID, applicantID).
		First(&app).Error
	if err != nil {
		return nil, notFound(err, apperrors.ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByTaskAndStatus(
	ctx context.Context,
	taskID string,
	status constants.ApplicationStatus,
) (*model.TaskApplication, error) {
	var app model.TaskApplication
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND status = ?", taskID, status).
		Order("updated_at desc").
		First(&app).Error
	if err != nil {
		return nil, notFound(err, apperrors.ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskApplication, error) {
	var apps []model.TaskApplication
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications by task: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]model.TaskApplication, error) {
	var apps []model.TaskApplication
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("applicant_id = ?", applicantID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications by applicant: %w", err)
	}
	return apps, nil
}

// Transition is the conditional single-row update every application state
// change goes through. Zero affected rows means another writer got there first.
func (r *ApplicationRepository) Transition(
	ctx context.Context,
	id string,
	from constants.ApplicationStatus,
	to constants.ApplicationStatus,
	extra map[string]interface{},
) error {
	values := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	for k, v := range extra {
		values[k] = v
	}

	res := r.db.WithContext(ctx).Model(&model.TaskApplication{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("transition application: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		app, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return apperrors.InvalidStateTransition(
			fmt.Sprintf("application %s cannot move from %s to %s", id, app.Status, to),
		)
	}
	return nil
}

// MarkStarted stamps started_at once. It reports whether this call stamped it.
func (r *ApplicationRepository) MarkStarted(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.TaskApplication{}).
		Where("id = ? AND status = ? AND started_at IS NULL", id, constants.ApplicationAccepted).
		Updates(map[string]interface{}{
			"started_at": at,
			"updated_at": at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("mark application started: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *ApplicationRepository) RejectPendingSiblings(ctx context.Context, taskID, winnerID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TaskApplication{}).
		Where("task_id = ? AND id <> ? AND status = ?", taskID, winnerID, constants.ApplicationPending).
		Updates(map[string]interface{}{
			"status":     constants.ApplicationRejected,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("reject sibling applications: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ApplicationRepository) ListApplicantIDs(ctx context.Context, taskID string, status constants.ApplicationStatus) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.TaskApplication{}).
		Where("task_id = ? AND status = ?", taskID, status).
		Pluck("applicant_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list applicant ids: %w", err)
	}
	return ids, nil
}

func (r *ApplicationRepository) DeleteByTask(ctx context.Context, taskID string) error {
	if err := r.db.WithContext(ctx).Delete(&model.TaskApplication{}, "task_id = ?", taskID).Error; err != nil {
		return fmt.Errorf("delete applications: %w", err)
	}
	return nil
}
