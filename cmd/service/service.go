// @title        Task Manager API
// @version      2.0.0
// @description  任務管理後端 API：註冊登入、個人任務 CRUD 與統計、管理員功能
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description 格式為 "Bearer {token}"
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/cache"
	"task-manager/internal/config"
	"task-manager/internal/database"
	"task-manager/internal/logging"
	"task-manager/internal/metrics"
	"task-manager/internal/ratelimit"
	"task-manager/internal/router"
	"task-manager/internal/service"
	"task-manager/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "task-manager/docs" // 引入 swag 產出的 docs
)

var (
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	signalContext   = notifyContext
	exitFunc        = os.Exit
)

var logOutput io.Writer = os.Stdout

// notifyContext 收到 SIGINT / SIGTERM 時取消
func notifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, logOutput)

	ctx, stop := signalContext()
	defer stop()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	// bcrypt 在 worker pool 上執行，限制同時雜湊的數量
	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		return fmt.Errorf("JWT 設定錯誤: %w", err)
	}
	m := metrics.New()

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(cfg.Development(), logger)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(logger))
	e.Use(m.Middleware())

	router.Setup(e, db, rdb, router.Deps{
		Hasher:  service.NewHasher(cfg.BcryptCost, wp),
		Tokens:  tokens,
		Limiter: ratelimit.NewLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow),
		Metrics: m,
		Logger:  logger,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"addr": cfg.Addr(), "env": cfg.AppEnv}).Info("server starting")
		serverErr <- startServer(e, cfg.Addr())
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Error("service exited")
		exitFunc(1)
	}
}
