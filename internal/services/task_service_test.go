package services

import (
	"context"
	"errors"
	"testing"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/geo"
)

func TestTaskService_CreateServiceTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, env.serviceInput(), ownerID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.Status != constants.StatusDraft {
		t.Errorf("expected status %s, got %s", constants.StatusDraft, task.Status)
	}
	if task.CalculatedPriceInCents == nil || *task.CalculatedPriceInCents != 4000 {
		t.Errorf("expected price 4000, got %v", task.CalculatedPriceInCents)
	}
	if task.AddressID == "" {
		t.Error("expected address to be persisted")
	}
	if env.notify.count(moderators, constants.NotifyTaskCreated) != 1 {
		t.Error("expected moderators to be notified")
	}
}

func TestTaskService_CreateShippingTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, env.shippingInput(), ownerID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	fetched, err := env.tasks.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if fetched.Shipping == nil {
		t.Fatal("expected shipping leg to be attached")
	}
	if fetched.Shipping.DeliveryAddressID != env.relay.AddressID {
		t.Errorf("expected delivery to relay address, got %s", fetched.Shipping.DeliveryAddressID)
	}
	if fetched.Shipping.Leg != 1 {
		t.Errorf("expected first leg, got %d", fetched.Shipping.Leg)
	}
	if fetched.CalculatedPriceInCents == nil || *fetched.CalculatedPriceInCents != fetched.Shipping.CalculatedPriceInCents {
		t.Errorf("expected task price to mirror shipping price")
	}
}

func TestTaskService_CreateShippingTaskRequiresRelayPoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := env.shippingInput()
	details := in.Details.(dto.ShippingDetails)
	details.RelayPointID = "some-address-id"
	in.Details = details

	_, err := env.tasks.CreateTask(ctx, in, ownerID)
	if !errors.Is(err, apperrors.ErrDestinationMustBeRelayPoint) {
		t.Fatalf("expected destination must be relay point, got %v", err)
	}

	tasks, err := env.tasks.GetMyTasks(ctx, ownerID)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no task to be persisted, got %d", len(tasks))
	}
}

func TestTaskService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := env.serviceInput()
	in.Details = dto.ServiceDetails{CategoryID: env.category.ID}

	if _, err := env.tasks.CreateTask(ctx, in, ownerID); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestTaskService_UpdateRepricesOnDurationChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, env.serviceInput(), ownerID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	duration := 30
	title := "Fix the sink quickly"
	updated, err := env.tasks.UpdateTask(ctx, task.ID, dto.UpdateTaskInput{
		EstimatedDuration: &duration,
		Title:             &title,
	}, ownerID)
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if updated.Title != title {
		t.Errorf("expected title %q, got %q", title, updated.Title)
	}
	if updated.CalculatedPriceInCents == nil || *updated.CalculatedPriceInCents != 1000 {
		t.Errorf("expected repriced 1000, got %v", updated.CalculatedPriceInCents)
	}
	if updated.Version != task.Version+1 {
		t.Errorf("expected version %d, got %d", task.Version+1, updated.Version)
	}
}

func TestTaskService_UpdateRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, env.serviceInput(), ownerID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	title := "Hijacked"
	_, err = env.tasks.UpdateTask(ctx, task.ID, dto.UpdateTaskInput{Title: &title}, "intruder")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestTaskService_UpdateFrozenOnceTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, _ := env.completedTask(t, "worker-1")
	price := *task.CalculatedPriceInCents

	duration := 999
	_, err := env.tasks.UpdateTask(ctx, task.ID, dto.UpdateTaskInput{EstimatedDuration: &duration}, ownerID)
	if !errors.Is(err, apperrors.ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition, got %v", err)
	}

	reloaded, err := env.store.Tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if *reloaded.CalculatedPriceInCents != price {
		t.Errorf("expected price to stay %d, got %d", price, *reloaded.CalculatedPriceInCents)
	}
}

func TestTaskService_ModerationTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, env.serviceInput(), ownerID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if _, err := env.tasks.RejectTask(ctx, task.ID, " "); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected reason to be required, got %v", err)
	}

	approved, err := env.tasks.ApproveTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to approve: %v", err)
	}
	if approved.Status != constants.StatusPublished {
		t.Errorf("expected %s, got %s", constants.StatusPublished, approved.Status)
	}

	if _, err := env.tasks.ApproveTask(ctx, task.ID); !errors.Is(err, apperrors.ErrInvalidStateTransition) {
		t.Errorf("expected invalid transition on second approval, got %v", err)
	}
	if _, err := env.tasks.RejectTask(ctx, task.ID, "spam"); !errors.Is(err, apperrors.ErrInvalidStateTransition) {
		t.Errorf("expected published task rejection to fail, got %v", err)
	}

	draft, err := env.tasks.CreateTask(ctx, env.serviceInput(), ownerID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	rejected, err := env.tasks.RejectTask(ctx, draft.ID, "spam")
	if err != nil {
		t.Fatalf("failed to reject: %v", err)
	}
	if rejected.Status != constants.StatusCancelled {
		t.Errorf("expected %s, got %s", constants.StatusCancelled, rejected.Status)
	}
	if env.notify.count(ownerID, constants.NotifyTaskRejected) != 1 {
		t.Error("expected owner to be notified of rejection")
	}
}

func TestTaskService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := env.publishedTask(t, env.shippingInput())
	env.apply(t, task.ID, "carrier-1")
	env.apply(t, task.ID, "carrier-2")
	if _, err := env.messages.SendMessage(ctx, task.ID, "carrier-1", ownerID, "hello", ""); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	if _, err := env.tasks.DeleteTask(ctx, task.ID, "carrier-1"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected unauthorized delete, got %v", err)
	}

	ok, err := env.tasks.DeleteTask(ctx, task.ID, ownerID)
	if err != nil || !ok {
		t.Fatalf("failed to delete task: %v", err)
	}

	db := env.store.DB()
	for _, table := range []string{"task_applications", "task_messages", "shippings", "tasks"} {
		var count int64
		column := "task_id"
		if table == "tasks" {
			column = "id"
		}
		if err := db.Table(table).Where(column+" = ?", task.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected no rows left in %s, got %d", table, count)
		}
	}
}

func TestTaskService_ListTasksFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	published := env.publishedTask(t, env.serviceInput())
	if _, err := env.tasks.CreateTask(ctx, env.serviceInput(), ownerID); err != nil {
		t.Fatalf("failed to create draft: %v", err)
	}

	tasks, err := env.tasks.ListTasks(ctx, dto.TaskFilters{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != published.ID {
		t.Fatalf("expected only the published task, got %d tasks", len(tasks))
	}

	pending, err := env.tasks.ListPendingTasks(ctx)
	if err != nil {
		t.Fatalf("failed to list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("expected 1 draft, got %d", len(pending))
	}

	lat, lng := 48.8686, 2.3317
	near, far := 1.0, 1.0
	tasks, err = env.tasks.ListTasks(ctx, dto.TaskFilters{Lat: &lat, Lng: &lng, RadiusKm: &near})
	if err != nil {
		t.Fatalf("failed to list nearby: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected task within 1 km, got %d", len(tasks))
	}

	lyonLat, lyonLng := 45.7640, 4.8357
	tasks, err = env.tasks.ListTasks(ctx, dto.TaskFilters{Lat: &lyonLat, Lng: &lyonLng, RadiusKm: &far})
	if err != nil {
		t.Fatalf("failed to list far: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no task near Lyon, got %d", len(tasks))
	}

	if _, err := env.tasks.ListTasks(ctx, dto.TaskFilters{Lat: &lat}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected partial geo filter to be rejected, got %v", err)
	}

	minDuration := 200
	tasks, err = env.tasks.ListTasks(ctx, dto.TaskFilters{DurationMin: &minDuration})
	if err != nil {
		t.Fatalf("failed to list by duration: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no task of 200+ minutes, got %d", len(tasks))
	}
}

func TestTaskService_EstimateShipping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quote, err := env.tasks.EstimateShipping(ctx, geo.Point{Lat: 48.8443, Lon: 2.3744}, env.relay.ID, constants.PackageLarge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.MinPriceInCents < 1200 || quote.MinPriceInCents != quote.MaxPriceInCents {
		t.Errorf("unexpected quote: %+v", quote)
	}
}

func TestTaskService_MarkIntermediaryStep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := env.publishedTask(t, env.shippingInput())
	app := env.apply(t, task.ID, "carrier-1")
	if _, err := env.apps.AcceptApplication(ctx, app.ID, ownerID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	stop := dto.AddressInput{Label: "Nation", Lat: 48.8483, Lng: 2.3958}

	if _, err := env.tasks.MarkIntermediaryStep(ctx, task.ID, stop, "stranger"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}

	if _, err := env.tasks.MarkIntermediaryStep(ctx, task.ID, stop, "carrier-1"); !errors.Is(err, apperrors.ErrInvalidStateTransition) {
		t.Errorf("expected hand-over before start to be refused, got %v", err)
	}
	if _, err := env.apps.StartTask(ctx, task.ID, "carrier-1"); err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	updated, err := env.tasks.MarkIntermediaryStep(ctx, task.ID, stop, "carrier-1")
	if err != nil {
		t.Fatalf("failed to mark intermediary step: %v", err)
	}

	if updated.Status != constants.StatusPublished {
		t.Errorf("expected task back to %s, got %s", constants.StatusPublished, updated.Status)
	}
	if updated.Shipping == nil || updated.Shipping.Leg != 2 {
		t.Fatalf("expected second leg to be current, got %+v", updated.Shipping)
	}
	if updated.AddressID != updated.Shipping.PickupAddressID {
		t.Error("expected task address to point at the new pickup")
	}

	legs, err := env.tasks.GetShippingLegs(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to list legs: %v", err)
	}
	if len(legs) != 2 {
		t.Errorf("expected 2 legs kept as history, got %d", len(legs))
	}

	app, err = env.store.Applications.FindByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("failed to reload application: %v", err)
	}
	if app.Status != constants.ApplicationCompleted {
		t.Errorf("expected carrier application %s, got %s", constants.ApplicationCompleted, app.Status)
	}

	next := env.apply(t, task.ID, "carrier-2")
	if _, err := env.apps.AcceptApplication(ctx, next.ID, ownerID); err != nil {
		t.Fatalf("expected next carrier to be acceptable, got %v", err)
	}
	if _, err := env.apps.StartTask(ctx, task.ID, "carrier-2"); err != nil {
		t.Fatalf("failed to start second leg: %v", err)
	}
	if _, err := env.apps.CompleteTask(ctx, task.ID, ownerID); err != nil {
		t.Fatalf("failed to complete: %v", err)
	}

	next, err = env.store.Applications.FindByID(ctx, next.ID)
	if err != nil {
		t.Fatalf("failed to reload application: %v", err)
	}

	// Both carriers now hold a completed application; the last one closes the task.
	if _, err := env.apps.ValidateTaskCompletion(ctx, task.ID, app.ValidationCode, "carrier-1"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected first carrier to be refused, got %v", err)
	}
	if _, err := env.apps.ValidateTaskCompletion(ctx, task.ID, next.ValidationCode, "carrier-1"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected first carrier to be refused with the last code, got %v", err)
	}

	done, err := env.apps.ValidateTaskCompletion(ctx, task.ID, next.ValidationCode, "carrier-2")
	if err != nil {
		t.Fatalf("failed to validate: %v", err)
	}
	if done.Status != constants.StatusDone {
		t.Errorf("expected %s, got %s", constants.StatusDone, done.Status)
	}

	app, err = env.store.Applications.FindByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("failed to reload application: %v", err)
	}
	if app.Status != constants.ApplicationCompleted {
		t.Errorf("expected first carrier to stay %s, got %s", constants.ApplicationCompleted, app.Status)
	}
}

func TestTaskService_MarkIntermediaryStepOnServiceTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := env.publishedTask(t, env.serviceInput())
	_, err := env.tasks.MarkIntermediaryStep(ctx, task.ID, dto.AddressInput{Label: "x", Lat: 1, Lng: 1}, "carrier-1")
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
