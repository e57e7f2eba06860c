package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/geo"
	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

type TaskService struct {
	store      *repository.Store
	pricing    *PricingService
	messages   *MessageService
	notify     NotificationDispatcher
	log        *slog.Logger
	moderators string
	handlers   map[constants.TaskType]taskTypeHandler
}

func NewTaskService(
	store *repository.Store,
	pricing *PricingService,
	messages *MessageService,
	notify NotificationDispatcher,
	log *slog.Logger,
	moderators string,
) *TaskService {
	return &TaskService{
		store:      store,
		pricing:    pricing,
		messages:   messages,
		notify:     notify,
		log:        log,
		moderators: moderators,
		handlers:   newTaskTypeHandlers(pricing),
	}
}

// CreateTask prices the task outside any transaction, then writes the
// addresses, the task and its first shipping leg as one unit.
func (s *TaskService) CreateTask(ctx context.Context, in dto.CreateTaskInput, ownerID string) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	handler, ok := s.handlers[in.Details.TaskType()]
	if !ok {
		return nil, apperrors.Validation("unknown task type: " + string(in.Details.TaskType()))
	}

	prepared, err := handler.prepare(ctx, in.Details)
	if err != nil {
		return nil, err
	}

	task, err := s.persistNewTask(ctx, in, ownerID, prepared)
	if err != nil {
		return nil, err
	}

	s.log.Info("task created", "task_id", task.ID, "type", task.Type, "owner_id", ownerID)
	s.notify.Notify(s.moderators, constants.NotifyTaskCreated, map[string]string{
		"task_id":  task.ID,
		"type":     string(task.Type),
		"owner_id": ownerID,
	})

	return task, nil
}

func (s *TaskService) persistNewTask(
	ctx context.Context,
	in dto.CreateTaskInput,
	ownerID string,
	prepared *preparedTask,
) (*model.Task, error) {
	price := prepared.priceInCents
	task := &model.Task{
		UserID:                 ownerID,
		Type:                   in.Details.TaskType(),
		Status:                 constants.StatusDraft,
		Title:                  strings.TrimSpace(in.Title),
		Description:            strings.TrimSpace(in.Description),
		CategoryID:             prepared.categoryID,
		EstimatedDuration:      prepared.estimatedDuration,
		FileID:                 in.FileID,
		CalculatedPriceInCents: &price,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		address, err := tx.Addresses.Save(ctx, in.Address.Label, in.Address.Lat, in.Address.Lng)
		if err != nil {
			return err
		}
		task.AddressID = address.ID
		task.Address = address

		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}

		if prepared.shipping == nil {
			return nil
		}

		pickup, err := tx.Addresses.Save(ctx, prepared.pickup.Label, prepared.pickup.Lat, prepared.pickup.Lng)
		if err != nil {
			return err
		}
		prepared.shipping.TaskID = task.ID
		prepared.shipping.PickupAddressID = pickup.ID
		if err := tx.Shippings.Append(ctx, prepared.shipping); err != nil {
			return err
		}
		task.Shipping = prepared.shipping
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask edits a task that nobody has taken yet. Once a task is in
// progress its price and details are frozen.
func (s *TaskService) UpdateTask(ctx context.Context, id string, in dto.UpdateTaskInput, ownerID string) (*model.Task, error) {
	task, err := s.requireOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if task.Status != constants.StatusDraft && task.Status != constants.StatusPublished {
		return nil, apperrors.InvalidStateTransition(
			fmt.Sprintf("task %s cannot be updated while %s", id, task.Status),
		)
	}
	if in.Empty() {
		return s.GetTask(ctx, id)
	}

	priceChanged, err := s.applyUpdate(task, in)
	if err != nil {
		return nil, err
	}

	if priceChanged {
		price, err := s.pricing.ServicePrice(ctx, *task.CategoryID, *task.EstimatedDuration)
		if err != nil {
			return nil, err
		}
		task.CalculatedPriceInCents = &price
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if in.Address != nil {
			address, err := tx.Addresses.Save(ctx, in.Address.Label, in.Address.Lat, in.Address.Lng)
			if err != nil {
				return err
			}
			task.AddressID = address.ID
		}
		return tx.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task updated", "task_id", id, "repriced", priceChanged)
	return s.GetTask(ctx, id)
}

// applyUpdate copies the provided fields onto task and reports whether a
// price input changed.
func (s *TaskService) applyUpdate(task *model.Task, in dto.UpdateTaskInput) (bool, error) {
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return false, apperrors.Validation("title cannot be empty")
		}
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return false, apperrors.Validation("description cannot be empty")
		}
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.Address != nil {
		if err := in.Address.Validate("address"); err != nil {
			return false, err
		}
	}
	if in.FileID != nil {
		task.FileID = in.FileID
	}

	if in.EstimatedDuration == nil && in.CategoryID == nil {
		return false, nil
	}
	if task.Type != constants.TaskTypeService {
		return false, apperrors.Validation("duration and category only apply to service tasks")
	}

	changed := false
	if in.EstimatedDuration != nil {
		if *in.EstimatedDuration <= 0 {
			return false, apperrors.Validation("estimated_duration must be positive")
		}
		if task.EstimatedDuration == nil || *task.EstimatedDuration != *in.EstimatedDuration {
			duration := *in.EstimatedDuration
			task.EstimatedDuration = &duration
			changed = true
		}
	}
	if in.CategoryID != nil {
		if strings.TrimSpace(*in.CategoryID) == "" {
			return false, apperrors.Validation("category_id cannot be empty")
		}
		if task.CategoryID == nil || *task.CategoryID != *in.CategoryID {
			categoryID := *in.CategoryID
			task.CategoryID = &categoryID
			changed = true
		}
	}

	return changed, nil
}

// DeleteTask removes the task and everything hanging off it, children first.
// It does not look at the task status.
func (s *TaskService) DeleteTask(ctx context.Context, id, ownerID string) (bool, error) {
	if _, err := s.requireOwner(ctx, id, ownerID); err != nil {
		return false, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Applications.DeleteByTask(ctx, id); err != nil {
			return err
		}
		if err := tx.Messages.DeleteByTask(ctx, id); err != nil {
			return err
		}
		if err := tx.Shippings.DeleteByTask(ctx, id); err != nil {
			return err
		}
		return tx.Tasks.Delete(ctx, id)
	})
	if err != nil {
		return false, err
	}

	s.log.Info("task deleted", "task_id", id, "owner_id", ownerID)
	return true, nil
}

func (s *TaskService) ApproveTask(ctx context.Context, id string) (*model.Task, error) {
	if err := s.store.Tasks.Transition(ctx, id, []constants.TaskStatus{constants.StatusDraft}, constants.StatusPublished, nil); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("task approved", "task_id", id)
	s.notify.Notify(task.UserID, constants.NotifyTaskApproved, map[string]string{"task_id": id})
	s.messages.Narrate(ctx, id, task.UserID, "Your task has been approved and is now published.")
	return task, nil
}

func (s *TaskService) RejectTask(ctx context.Context, id, reason string) (*model.Task, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation("a rejection reason is required")
	}

	if err := s.store.Tasks.Transition(ctx, id, []constants.TaskStatus{constants.StatusDraft}, constants.StatusCancelled, nil); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("task rejected", "task_id", id, "reason", reason)
	s.notify.Notify(task.UserID, constants.NotifyTaskRejected, map[string]string{
		"task_id": id,
		"reason":  reason,
	})
	s.messages.Narrate(ctx, id, task.UserID, "Your task has been rejected: "+reason)
	return task, nil
}

// MarkIntermediaryStep hands a shipping task over at a new pickup point. The
// carrier's application is completed, a new leg is priced from the new
// pickup to the unchanged delivery address, and the task goes back to
// Published so another carrier can take the next leg.
func (s *TaskService) MarkIntermediaryStep(
	ctx context.Context,
	taskID string,
	stop dto.AddressInput,
	carrierID string,
) (*model.Task, error) {
	if err := stop.Validate("address"); err != nil {
		return nil, err
	}

	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Type != constants.TaskTypeShipping {
		return nil, apperrors.Validation("intermediary steps only apply to shipping tasks")
	}
	if task.Status != constants.StatusInProgress {
		return nil, apperrors.InvalidStateTransition("intermediary steps can only be recorded while the task is in progress")
	}

	app, err := s.store.Applications.FindByTaskAndApplicant(ctx, taskID, carrierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("only the carrier of this task can record an intermediary step")
		}
		return nil, err
	}
	if app.Status != constants.ApplicationAccepted {
		return nil, apperrors.Unauthorized("only the carrier of this task can record an intermediary step")
	}
	if app.StartedAt == nil {
		return nil, apperrors.InvalidStateTransition("the carrier has to start the task before handing it over")
	}

	current, err := s.store.Shippings.Current(ctx, taskID)
	if err != nil {
		return nil, err
	}
	delivery, err := s.store.Addresses.FindByID(ctx, current.DeliveryAddressID)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.QuoteTrip(ctx, stop.Point(), geo.Point{Lat: delivery.Lat, Lon: delivery.Lng}, current.PackageCategory)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		pickup, err := tx.Addresses.Save(ctx, stop.Label, stop.Lat, stop.Lng)
		if err != nil {
			return err
		}

		leg := &model.Shipping{
			TaskID:                     taskID,
			PackageCategory:            current.PackageCategory,
			PickupAddressID:            pickup.ID,
			DeliveryAddressID:          current.DeliveryAddressID,
			RelayPointID:               current.RelayPointID,
			PackageDetails:             current.PackageDetails,
			EstimatedDistanceInMeters:  quote.DistanceMeters,
			EstimatedDurationInMinutes: quote.DurationMinutes,
			CalculatedPriceInCents:     quote.PriceInCents(),
		}
		if err := tx.Shippings.Append(ctx, leg); err != nil {
			return err
		}

		now := nowUTC()
		if err := tx.Applications.Transition(ctx, app.ID, constants.ApplicationAccepted, constants.ApplicationCompleted, map[string]interface{}{
			"completed_at": now,
		}); err != nil {
			return err
		}

		return tx.Tasks.Transition(ctx, taskID, []constants.TaskStatus{constants.StatusInProgress}, constants.StatusPublished, map[string]interface{}{
			"address_id":                pickup.ID,
			"calculated_price_in_cents": quote.PriceInCents(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("intermediary step recorded", "task_id", taskID, "carrier_id", carrierID)
	s.notify.Notify(task.UserID, constants.NotifyIntermediaryStep, map[string]string{
		"task_id":    taskID,
		"carrier_id": carrierID,
	})
	s.messages.Narrate(ctx, taskID, task.UserID,
		fmt.Sprintf("Your package reached an intermediary stop (%s) and is waiting for the next carrier.", stop.Label))

	return s.GetTask(ctx, taskID)
}

// GetTask returns the task with its address and, for shipping tasks, the
// current leg.
func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.store.Tasks.FindWithAddress(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Type == constants.TaskTypeShipping {
		shipping, err := s.store.Shippings.Current(ctx, id)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		task.Shipping = shipping
	}
	return task, nil
}

func (s *TaskService) GetShippingLegs(ctx context.Context, taskID string) ([]model.Shipping, error) {
	if _, err := s.store.Tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.store.Shippings.ListByTask(ctx, taskID)
}

// ListTasks returns published tasks unless filters ask for another status.
// A geographic filter needs lat, lng and radius_km together.
func (s *TaskService) ListTasks(ctx context.Context, filters dto.TaskFilters) ([]model.Task, error) {
	f := repository.TaskFilter{
		Type:        filters.Type,
		Status:      filters.Status,
		CategoryID:  filters.CategoryID,
		DurationMin: filters.DurationMin,
		DurationMax: filters.DurationMax,
	}
	if f.Status == nil {
		published := constants.StatusPublished
		f.Status = &published
	}
	if !f.Status.Valid() {
		return nil, apperrors.Validation("unknown task status: " + string(*f.Status))
	}
	if f.Type != nil && !f.Type.Valid() {
		return nil, apperrors.Validation("unknown task type: " + string(*f.Type))
	}
	if f.DurationMin != nil && f.DurationMax != nil && *f.DurationMin > *f.DurationMax {
		return nil, apperrors.Validation("duration_min cannot exceed duration_max")
	}

	center, radius, geoFilter, err := radiusFilter(filters)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.Tasks.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if !geoFilter {
		return tasks, nil
	}

	nearby := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Address == nil {
			continue
		}
		d, err := geo.Distance(center, geo.Point{Lat: task.Address.Lat, Lon: task.Address.Lng})
		if err != nil {
			s.log.Warn("skipping task with malformed address", "task_id", task.ID, "error", err)
			continue
		}
		if d <= radius {
			nearby = append(nearby, task)
		}
	}
	return nearby, nil
}

func radiusFilter(filters dto.TaskFilters) (geo.Point, float64, bool, error) {
	set := 0
	for _, present := range []bool{filters.Lat != nil, filters.Lng != nil, filters.RadiusKm != nil} {
		if present {
			set++
		}
	}
	if set == 0 {
		return geo.Point{}, 0, false, nil
	}
	if set != 3 {
		return geo.Point{}, 0, false, apperrors.Validation("lat, lng and radius_km must be given together")
	}

	center := geo.Point{Lat: *filters.Lat, Lon: *filters.Lng}
	if err := center.Validate(); err != nil {
		return geo.Point{}, 0, false, apperrors.Validation(err.Error())
	}
	if *filters.RadiusKm <= 0 {
		return geo.Point{}, 0, false, apperrors.Validation("radius_km must be positive")
	}
	return center, *filters.RadiusKm * 1000, true, nil
}

func (s *TaskService) GetMyTasks(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.store.Tasks.List(ctx, repository.TaskFilter{UserID: &ownerID})
}

// ListPendingTasks returns the drafts waiting for moderation.
func (s *TaskService) ListPendingTasks(ctx context.Context) ([]model.Task, error) {
	return s.ListTasksByStatus(ctx, constants.StatusDraft)
}

func (s *TaskService) ListTasksByStatus(ctx context.Context, status constants.TaskStatus) ([]model.Task, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("unknown task status: " + string(status))
	}
	return s.store.Tasks.List(ctx, repository.TaskFilter{Status: &status})
}

func (s *TaskService) EstimateShipping(
	ctx context.Context,
	pickup geo.Point,
	relayPointID string,
	category constants.PackageCategory,
) (*ShippingQuote, error) {
	if err := pickup.Validate(); err != nil {
		return nil, apperrors.ErrGeoCalculationFailure.WithMessage(err.Error())
	}
	if strings.TrimSpace(relayPointID) == "" {
		return nil, apperrors.Validation("relay_point_id is required")
	}
	return s.pricing.QuoteShipping(ctx, pickup, relayPointID, category)
}

func (s *TaskService) requireOwner(ctx context.Context, taskID, userID string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperrors.Unauthorized("only the task owner can do this")
	}
	return task, nil
}
