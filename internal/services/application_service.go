package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

type ApplicationService struct {
	store    *repository.Store
	tasks    *TaskService
	messages *MessageService
	notify   NotificationDispatcher
	log      *slog.Logger
}

func NewApplicationService(
	store *repository.Store,
	tasks *TaskService,
	messages *MessageService,
	notify NotificationDispatcher,
	log *slog.Logger,
) *ApplicationService {
	return &ApplicationService{
		store:    store,
		tasks:    tasks,
		messages: messages,
		notify:   notify,
		log:      log,
	}
}

// ApplyToTask creates a Pending application. Two concurrent applies for the
// same pair race on the unique index; the loser gets ErrDuplicateApplication.
func (s *ApplicationService) ApplyToTask(ctx context.Context, in dto.ApplyToTaskRequest, applicantID string) (*model.TaskApplication, error) {
	if strings.TrimSpace(in.TaskID) == "" {
		return nil, apperrors.Validation("task_id is required")
	}

	task, err := s.store.Tasks.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != constants.StatusPublished {
		return nil, apperrors.InvalidStateTransition("task is not open for applications")
	}
	if task.UserID == applicantID {
		return nil, apperrors.Unauthorized("you cannot apply to your own task")
	}

	code, err := GenerateValidationCode(ValidationCodeLength)
	if err != nil {
		return nil, err
	}

	app := &model.TaskApplication{
		TaskID:         task.ID,
		ApplicantID:    applicantID,
		Status:         constants.ApplicationPending,
		Message:        strings.TrimSpace(in.Message),
		ValidationCode: code,
	}
	if err := s.store.Applications.Create(ctx, app); err != nil {
		return nil, err
	}

	s.log.Info("application created", "application_id", app.ID, "task_id", task.ID, "applicant_id", applicantID)
	s.notify.Notify(task.UserID, constants.NotifyApplicationReceived, map[string]string{
		"task_id":        task.ID,
		"application_id": app.ID,
		"applicant_id":   applicantID,
	})
	return app, nil
}

// AcceptApplication picks the winner of a task. The task transition runs
// first so concurrent accepts on the same task serialize on the task row;
// whoever loses sees InvalidStateTransition.
func (s *ApplicationService) AcceptApplication(ctx context.Context, id, ownerID string) (*model.TaskApplication, error) {
	app, task, err := s.loadForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if app.Status != constants.ApplicationPending {
		return nil, apperrors.InvalidStateTransition("application is no longer pending")
	}

	var rejected []string
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		err := tx.Tasks.Transition(ctx, task.ID, []constants.TaskStatus{constants.StatusPublished}, constants.StatusInProgress, nil)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidStateTransition) {
				return apperrors.InvalidStateTransition("application is no longer pending")
			}
			return err
		}

		if err := tx.Applications.Transition(ctx, app.ID, constants.ApplicationPending, constants.ApplicationAccepted, nil); err != nil {
			return err
		}

		rejected, err = tx.Applications.ListApplicantIDs(ctx, task.ID, constants.ApplicationPending)
		if err != nil {
			return err
		}

		_, err = tx.Applications.RejectPendingSiblings(ctx, task.ID, app.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("application accepted",
		"application_id", app.ID,
		"task_id", task.ID,
		"rejected_siblings", len(rejected),
	)

	s.notify.Notify(app.ApplicantID, constants.NotifyApplicationAccepted, map[string]string{
		"task_id":        task.ID,
		"application_id": app.ID,
	})
	s.messages.Narrate(ctx, task.ID, app.ApplicantID,
		fmt.Sprintf("Your application for %q has been accepted. You can start the task.", task.Title))

	for _, applicantID := range rejected {
		s.notify.Notify(applicantID, constants.NotifyApplicationRejected, map[string]string{
			"task_id": task.ID,
			"reason":  "another application was accepted",
		})
	}

	return s.store.Applications.FindByID(ctx, app.ID)
}

func (s *ApplicationService) RejectApplication(ctx context.Context, id, reason, ownerID string) (*model.TaskApplication, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation("a rejection reason is required")
	}

	app, task, err := s.loadForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Applications.Transition(ctx, app.ID, constants.ApplicationPending, constants.ApplicationRejected, nil); err != nil {
		return nil, err
	}

	s.log.Info("application rejected", "application_id", app.ID, "task_id", task.ID)
	s.notify.Notify(app.ApplicantID, constants.NotifyApplicationRejected, map[string]string{
		"task_id":        task.ID,
		"application_id": app.ID,
		"reason":         reason,
	})
	s.messages.Narrate(ctx, task.ID, app.ApplicantID,
		fmt.Sprintf("Your application for %q has been rejected: %s", task.Title, reason))

	return s.store.Applications.FindByID(ctx, app.ID)
}

// StartTask stamps started_at on the caller's accepted application. Calling
// it again changes nothing and does not notify twice.
func (s *ApplicationService) StartTask(ctx context.Context, taskID, applicantID string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	app, err := s.store.Applications.FindByTaskAndApplicant(ctx, taskID, applicantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("you have no application for this task")
		}
		return nil, err
	}
	if app.Status != constants.ApplicationAccepted {
		return nil, apperrors.InvalidStateTransition("only an accepted application can start the task")
	}
	if task.Status != constants.StatusInProgress {
		return nil, apperrors.InvalidStateTransition(
			fmt.Sprintf("task %s cannot be started from %s", taskID, task.Status),
		)
	}

	stamped, err := s.store.Applications.MarkStarted(ctx, app.ID, nowUTC())
	if err != nil {
		return nil, err
	}

	if stamped {
		s.log.Info("task started", "task_id", taskID, "applicant_id", applicantID)
		s.notify.Notify(task.UserID, constants.NotifyTaskStarted, map[string]string{
			"task_id":      taskID,
			"applicant_id": applicantID,
		})
		s.messages.Narrate(ctx, taskID, task.UserID, fmt.Sprintf("Work on %q has started.", task.Title))
	}

	return s.tasks.GetTask(ctx, taskID)
}

// CompleteTask is the owner's half of the handshake. The applicant receives
// the validation code it must present to close the task.
func (s *ApplicationService) CompleteTask(ctx context.Context, taskID, ownerID string) (*model.Task, error) {
	task, err := s.tasks.requireOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if task.Status != constants.StatusInProgress {
		return nil, apperrors.InvalidStateTransition(
			fmt.Sprintf("task %s cannot be completed from %s", taskID, task.Status),
		)
	}

	app, err := s.store.Applications.FindByTaskAndStatus(ctx, taskID, constants.ApplicationAccepted)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidStateTransition("task has no accepted application")
		}
		return nil, err
	}
	if app.StartedAt == nil {
		return nil, apperrors.InvalidStateTransition("task has not been started by the applicant")
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Applications.Transition(ctx, app.ID, constants.ApplicationAccepted, constants.ApplicationCompleted, map[string]interface{}{
			"completed_at": nowUTC(),
		}); err != nil {
			return err
		}
		return tx.Tasks.Transition(ctx, taskID, []constants.TaskStatus{constants.StatusInProgress}, constants.StatusCompleted, nil)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task completed", "task_id", taskID, "applicant_id", app.ApplicantID)
	s.notify.Notify(app.ApplicantID, constants.NotifyTaskCompleted, map[string]string{"task_id": taskID})
	if _, err := s.messages.SendValidationCode(ctx, taskID, app.ApplicantID,
		fmt.Sprintf("The owner marked %q as done. Your validation code is %s.", task.Title, app.ValidationCode),
	); err != nil {
		s.log.Warn("validation code message not delivered", "task_id", taskID, "applicant_id", app.ApplicantID, "error", err)
	}

	return s.tasks.GetTask(ctx, taskID)
}

// ValidateTaskCompletion closes the task. Each failed precondition maps to
// exactly one error kind.
func (s *ApplicationService) ValidateTaskCompletion(ctx context.Context, taskID, code, applicantID string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != constants.StatusCompleted {
		return nil, apperrors.InvalidStateTransition(
			fmt.Sprintf("task %s cannot be validated from %s", taskID, task.Status),
		)
	}

	app, err := s.store.Applications.FindByTaskAndStatus(ctx, taskID, constants.ApplicationCompleted)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidStateTransition("task has no completed application")
		}
		return nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, apperrors.Unauthorized("only the applicant who did the work can validate it")
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(code)), []byte(app.ValidationCode)) != 1 {
		return nil, apperrors.ErrInvalidValidationCode
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Applications.Transition(ctx, app.ID, constants.ApplicationCompleted, constants.ApplicationValidated, map[string]interface{}{
			"validated_at": nowUTC(),
		}); err != nil {
			return err
		}
		return tx.Tasks.Transition(ctx, taskID, []constants.TaskStatus{constants.StatusCompleted}, constants.StatusDone, nil)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task validated", "task_id", taskID, "applicant_id", applicantID)
	s.notify.Notify(task.UserID, constants.NotifyTaskValidated, map[string]string{
		"task_id":      taskID,
		"applicant_id": applicantID,
	})
	s.messages.Narrate(ctx, taskID, task.UserID, fmt.Sprintf("%q has been validated and is now done.", task.Title))

	return s.tasks.GetTask(ctx, taskID)
}

func (s *ApplicationService) GetMyApplications(ctx context.Context, applicantID string) ([]model.TaskApplication, error) {
	return s.store.Applications.ListByApplicant(ctx, applicantID)
}

func (s *ApplicationService) GetTaskApplications(ctx context.Context, taskID, ownerID string) ([]model.TaskApplication, error) {
	if _, err := s.tasks.requireOwner(ctx, taskID, ownerID); err != nil {
		return nil, err
	}
	return s.store.Applications.ListByTask(ctx, taskID)
}

func (s *ApplicationService) loadForOwner(ctx context.Context, id, ownerID string) (*model.TaskApplication, *model.Task, error) {
	app, err := s.store.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	task, err := s.tasks.requireOwner(ctx, app.TaskID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return app, task, nil
}
