package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/sudo-init-do/crafthub/internal/admin"
	"github.com/sudo-init-do/crafthub/internal/alerts"
	"github.com/sudo-init-do/crafthub/internal/auth"
	"github.com/sudo-init-do/crafthub/internal/config"
	"github.com/sudo-init-do/crafthub/internal/db"
	"github.com/sudo-init-do/crafthub/internal/logging"
	"github.com/sudo-init-do/crafthub/internal/marketplace"
	mware "github.com/sudo-init-do/crafthub/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.RequireServer(); err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to Postgres", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	if err := db.EnsureSchema(ctx, pool, logger); err != nil {
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}

	notifications := &alerts.PgNotificationStore{Pool: pool}
	var notifier marketplace.Notifier = alerts.Noop{}
	if cfg.RedisAddr != "" {
		client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer client.Close()
		notifier = alerts.NewQueue(client)

		worker := alerts.NewWorker(cfg.RedisAddr, notifications, logger)
		if err := worker.Start(); err != nil {
			logger.Fatal("asynq worker failed to start", zap.Error(err))
		}
		defer worker.Shutdown()
		logger.Info("asynq initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set; gig notifications disabled")
	}

	e := newServer(cfg, pool, notifier, notifications, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("API server listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newServer(cfg *config.Config, pool *pgxpool.Pool, notifier marketplace.Notifier, notifications alerts.NotificationStore, logger *zap.Logger) *echo.Echo {
	secret := []byte(cfg.JWTSecret)

	gigs := &marketplace.GigHandler{Store: &marketplace.PgStore{Pool: pool}, Notifier: notifier, Logger: logger}
	authH := &auth.Handler{Users: &auth.PgUserStore{Pool: pool}, Secret: secret, Logger: logger}
	alertsH := &alerts.Handler{Store: notifications, Logger: logger}
	adminH := &admin.Handler{Store: &admin.PgStore{Pool: pool}, Logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Health
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", authH.Signup)
	authGroup.POST("/login", authH.Login)

	// Public discovery
	e.GET("/api/v1/gig", gigs.GetAllGigs)

	api := e.Group("/api/v1")
	api.Use(mware.JWT(secret))
	api.POST("/gig", gigs.CreateGig, mware.RequireRoles(mware.AccountRoles...))
	api.GET("/gig/me", gigs.GetUserGigs)
	api.GET("/notifications", alertsH.ListNotifications)
	api.POST("/notifications/:id/read", alertsH.MarkNotificationRead)

	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWT(secret))
	adminGroup.Use(mware.AdminGuard)
	adminGroup.GET("/stats", adminH.Stats)
	adminGroup.POST("/gigs/:id/suspend", adminH.SuspendGig)
	adminGroup.POST("/gigs/:id/approve", adminH.ApproveGig)
	adminGroup.POST("/users/:id/suspend", adminH.SuspendUser)
	adminGroup.POST("/users/:id/activate", adminH.ActivateUser)
	adminGroup.POST("/users/:id/promote_creator", adminH.PromoteCreator)
	adminGroup.POST("/users/:id/demote_creator", adminH.DemoteCreator)

	return e
}
