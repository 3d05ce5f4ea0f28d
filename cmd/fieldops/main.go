package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/garzadist/fieldops/internal/adapter/gcal"
	fohttp "github.com/garzadist/fieldops/internal/adapter/http"
	fonats "github.com/garzadist/fieldops/internal/adapter/nats"
	"github.com/garzadist/fieldops/internal/adapter/otel"
	"github.com/garzadist/fieldops/internal/adapter/postgres"
	"github.com/garzadist/fieldops/internal/adapter/ristretto"
	"github.com/garzadist/fieldops/internal/adapter/ws"
	"github.com/garzadist/fieldops/internal/config"
	"github.com/garzadist/fieldops/internal/domain/notification"
	"github.com/garzadist/fieldops/internal/logger"
	"github.com/garzadist/fieldops/internal/middleware"
	"github.com/garzadist/fieldops/internal/port/calendarmirror"
	"github.com/garzadist/fieldops/internal/port/messagequeue"
	"github.com/garzadist/fieldops/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// NATS
	queue, err := fonats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()

	// In-process cache
	cache, err := ristretto.New(cfg.Cache)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	// Google Calendar mirror (nil when not configured)
	var mirror calendarmirror.Mirror
	if gc, err := gcal.New(ctx, cfg.GCal); err != nil {
		slog.Warn("calendar mirror disabled", "error", err)
	} else if gc != nil {
		mirror = gc
		slog.Info("calendar mirror enabled", "calendar_id", cfg.GCal.CalendarID)
	}

	otelShutdown, err := otel.Setup(cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---
	hub := ws.NewHub()
	store := postgres.NewStore(pool)
	notificationSvc := service.NewNotificationService(store, queue)
	taskSvc := service.NewTaskService(store, queue, notificationSvc, mirror, metrics)
	outcomeSvc := service.NewOutcomeService(store, queue, metrics)
	sweepSvc := service.NewSweepService(store, notificationSvc, cache, metrics, cfg.Sweep, cfg.Cache.ManagerTTL)

	// Bridge the notifications change feed onto the websocket hub so
	// open UI clients see new inbox rows without polling.
	cancelFeed, err := queue.Subscribe(ctx, messagequeue.SubjectNotificationCreated, func(_ string, data []byte) error {
		var n notification.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode notification event: %w", err)
		}
		ev := ws.NotificationEvent{NotificationID: n.ID, UserID: n.UserID, Title: n.Title, Link: n.Link}
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode notification event: %w", err)
		}
		hub.BroadcastToUser(ctx, n.UserID, ws.Message{Type: ws.EventNotificationCreated, Payload: payload})
		return nil
	})
	if err != nil {
		return fmt.Errorf("notification feed subscriber: %w", err)
	}
	defer cancelFeed()

	// Task completions go to every connection: dashboards watch the
	// whole board, not one inbox.
	cancelTasks, err := queue.Subscribe(ctx, messagequeue.SubjectTaskCompleted, func(_ string, data []byte) error {
		var ev ws.TaskCompletedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("decode task event: %w", err)
		}
		hub.BroadcastEvent(ctx, ws.EventTaskCompleted, ev)
		return nil
	})
	if err != nil {
		return fmt.Errorf("task feed subscriber: %w", err)
	}
	defer cancelTasks()

	// --- HTTP ---
	handlers := &fohttp.Handlers{
		Tasks:         taskSvc,
		Outcomes:      outcomeSvc,
		Sweep:         sweepSvc,
		Notifications: notificationSvc,
		Escalations:   service.NewEscalationService(store),
		Restaurants:   service.NewRestaurantService(store),
		Leads:         service.NewLeadService(store),
		Orders:        service.NewOrderService(store),
		Activity:      service.NewActivityService(store),
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(fohttp.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.RequestID) // before Logger so request_id is populated
	r.Use(fohttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.ActorID)
	r.Use(otel.HTTPMiddleware(cfg.Logging.Service))

	// Health endpoint with service status
	r.Get("/health", healthHandler(cfg, hub))

	// WebSocket endpoint
	r.Get("/ws", hub.HandleWS)

	// API routes
	fohttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler returns an http.HandlerFunc that reports service health.
func healthHandler(cfg *config.Config, hub *ws.Hub) http.HandlerFunc {
	type healthStatus struct {
		Status        string `json:"status"`
		Postgres      string `json:"postgres"`
		NATS          string `json:"nats"`
		WSConnections int    `json:"ws_connections"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		status := healthStatus{
			Status:        "ok",
			Postgres:      cfg.Postgres.DSN,
			NATS:          cfg.NATS.URL,
			WSConnections: hub.ConnectionCount(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	}
}
