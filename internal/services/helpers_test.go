package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

const (
	ownerID    = "owner-1"
	moderators = "moderators"
	hourlyRate = int64(2000)
)

type sentNotification struct {
	UserID  string
	Kind    constants.NotificationKind
	Payload map[string]string
}

// recordingDispatcher captures notifications synchronously.
type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (r *recordingDispatcher) Notify(userID string, kind constants.NotificationKind, payload map[string]string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, sentNotification{UserID: userID, Kind: kind, Payload: payload})
	return true
}

func (r *recordingDispatcher) count(userID string, kind constants.NotificationKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, s := range r.sent {
		if s.UserID == userID && s.Kind == kind {
			n++
		}
	}
	return n
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

type testEnv struct {
	store    *repository.Store
	notify   *recordingDispatcher
	pricing  *PricingService
	configs  *PricingConfigService
	messages *MessageService
	tasks    *TaskService
	apps     *ApplicationService
	refs     *ReferenceService

	category *model.Category
	relay    *model.RelayPoint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewStore(setupTestDB(t))
	log := discardLogger()
	notify := &recordingDispatcher{}

	pricing := NewPricingService(store.PricingConfigs, store.Categories, store.RelayPoints, store.Addresses, log)
	messages := NewMessageService(store, notify, log)
	tasks := NewTaskService(store, pricing, messages, notify, log, moderators)

	env := &testEnv{
		store:    store,
		notify:   notify,
		pricing:  pricing,
		configs:  NewPricingConfigService(store, log),
		messages: messages,
		tasks:    tasks,
		apps:     NewApplicationService(store, tasks, messages, notify, log),
		refs:     NewReferenceService(store, log),
	}

	ctx := context.Background()
	if _, err := env.configs.SeedDefault(ctx); err != nil {
		t.Fatalf("failed to seed pricing config: %v", err)
	}

	rate := hourlyRate
	category, err := env.refs.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Handyman", AmountInCents: &rate})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	env.category = category

	relay, err := env.refs.CreateRelayPoint(ctx, dto.CreateRelayPointRequest{
		Name:    "Bastille relay",
		Address: &dto.AddressInput{Label: "Place de la Bastille", Lat: 48.8532, Lng: 2.3691},
	}, "relay-owner")
	if err != nil {
		t.Fatalf("failed to create relay point: %v", err)
	}
	env.relay = relay

	return env
}

func (e *testEnv) serviceInput() dto.CreateTaskInput {
	return dto.CreateTaskInput{
		Title:       "Fix the sink",
		Description: "Kitchen sink leaks",
		Address:     &dto.AddressInput{Label: "10 rue de la Paix", Lat: 48.8686, Lng: 2.3317},
		Details:     dto.ServiceDetails{CategoryID: e.category.ID, EstimatedDuration: 120},
	}
}

func (e *testEnv) shippingInput() dto.CreateTaskInput {
	return dto.CreateTaskInput{
		Title:       "Bring my parcel",
		Description: "A box of books",
		Address:     &dto.AddressInput{Label: "Gare de Lyon", Lat: 48.8443, Lng: 2.3744},
		Details: dto.ShippingDetails{
			PackageCategory: constants.PackageSmall,
			PickupAddress:   &dto.AddressInput{Label: "Gare de Lyon", Lat: 48.8443, Lng: 2.3744},
			RelayPointID:    e.relay.ID,
			PackageDetails:  []byte(`{"weight_kg":3}`),
		},
	}
}

// publishedTask creates and approves a task.
func (e *testEnv) publishedTask(t *testing.T, in dto.CreateTaskInput) *model.Task {
	t.Helper()
	ctx := context.Background()

	task, err := e.tasks.CreateTask(ctx, in, ownerID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	task, err = e.tasks.ApproveTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to approve task: %v", err)
	}
	return task
}

func (e *testEnv) apply(t *testing.T, taskID, applicantID string) *model.TaskApplication {
	t.Helper()

	app, err := e.apps.ApplyToTask(context.Background(), dto.ApplyToTaskRequest{TaskID: taskID, Message: "I can do it"}, applicantID)
	if err != nil {
		t.Fatalf("failed to apply as %s: %v", applicantID, err)
	}
	return app
}

// completedTask walks a service task up to Completed and returns it with the
// winning application.
func (e *testEnv) completedTask(t *testing.T, applicantID string) (*model.Task, *model.TaskApplication) {
	t.Helper()
	ctx := context.Background()

	task := e.publishedTask(t, e.serviceInput())
	app := e.apply(t, task.ID, applicantID)

	if _, err := e.apps.AcceptApplication(ctx, app.ID, ownerID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}
	if _, err := e.apps.StartTask(ctx, task.ID, applicantID); err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	task, err := e.apps.CompleteTask(ctx, task.ID, ownerID)
	if err != nil {
		t.Fatalf("failed to complete: %v", err)
	}

	app, err = e.store.Applications.FindByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("failed to reload application: %v", err)
	}
	return task, app
}
