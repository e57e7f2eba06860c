package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"

	config "task-marketplace.com/task-marketplace/internal/configs"
	httpapi "task-marketplace.com/task-marketplace/internal/http"
	"task-marketplace.com/task-marketplace/internal/queue"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
	"task-marketplace.com/task-marketplace/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the marketplace HTTP API and the notification worker pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := loadConfig()

		db, store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		notifier, inbox, redisClient, err := newNotifier(cfg, logger)
		if err != nil {
			return err
		}
		if redisClient != nil {
			defer redisClient.Close()
		}

		pool := services.NewNotificationPool(notifier, logger, cfg.NotifyWorkers, cfg.NotifyQueueSize)
		handler := newHandler(cfg, store, pool, inbox, logger)

		e := echo.New()
		e.HideBanner = true
		e.HTTPErrorHandler = httpapi.ErrorHandler(logger)
		e.IPExtractor = echo.ExtractIPDirect()
		httpapi.Register(e, handler, cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL())
			if err := e.Start(cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", "error", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown incomplete", "error", err)
		}
		pool.Shutdown(shutdownCtx)

		logger.Info("HTTP server and notification pool shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newNotifier returns the Redis sink when enabled and the log sink otherwise.
// The inbox is nil without Redis.
func newNotifier(cfg config.Config, logger *slog.Logger) (queue.Notifier, httpapi.NotificationInbox, rueidis.Client, error) {
	if !cfg.RedisEnabled {
		logger.Info("redis disabled, notifications are only logged")
		return queue.NewLogNotifier(logger), nil, nil, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr())
	if err != nil {
		return nil, nil, nil, err
	}

	redisNotifier := queue.NewRedisNotifier(client, cfg.RedisNotificationPrefix)
	return redisNotifier, redisNotifier, client, nil
}

func newHandler(
	cfg config.Config,
	store *repository.Store,
	notify services.NotificationDispatcher,
	inbox httpapi.NotificationInbox,
	logger *slog.Logger,
) *httpapi.Handler {
	pricing := services.NewPricingService(store.PricingConfigs, store.Categories, store.RelayPoints, store.Addresses, logger)
	messages := services.NewMessageService(store, notify, logger)
	tasks := services.NewTaskService(store, pricing, messages, notify, logger, cfg.ModeratorsChannel)
	applications := services.NewApplicationService(store, tasks, messages, notify, logger)

	return httpapi.NewHandler(
		tasks,
		applications,
		messages,
		services.NewPricingConfigService(store, logger),
		services.NewReferenceService(store, logger),
		inbox,
	)
}
