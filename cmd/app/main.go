package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BuzzLyutic/taskly/internal/board"
	"github.com/BuzzLyutic/taskly/internal/config"
	"github.com/BuzzLyutic/taskly/internal/handler"
	"github.com/BuzzLyutic/taskly/internal/repo"
	"github.com/BuzzLyutic/taskly/internal/service"
	"github.com/BuzzLyutic/taskly/internal/view"
	"github.com/BuzzLyutic/taskly/internal/worker"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "server configuration file")
	flag.Parse()

	// Загрузка конфигурации
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаем логгер
	logger := mustMakeLogger(cfg.LogLevel)
	defer logger.Sync()

	// Хранилище ключ-значение
	store, closeStore := mustOpenStore(cfg, logger)
	defer closeStore()

	collections := repo.NewCollections(store, logger)
	renderer, err := view.New()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	scheduler := worker.NewScheduler(logger, cfg.TransitionDelay)
	boards := board.NewRegistry(
		board.NewBoard(board.TodayList(), collections, renderer, scheduler, logger),
		board.NewBoard(board.UpcomingList(), collections, renderer, scheduler, logger),
	)

	taskHandler := handler.NewTaskHandler(service.NewTaskService(collections, boards), renderer, logger)
	projectHandler := handler.NewProjectHandler(service.NewProjectService(collections, renderer), renderer, logger)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(taskHandler, projectHandler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	scheduler.Stop()
	logger.Info("Server stopped successfully!")
}

func mustOpenStore(cfg config.Config, logger *zap.Logger) (repo.KVStore, func()) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repo.NewMemoryStore(), func() {}
	case config.DriverPostgres:
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL) // Создаем новое соединение к БД
		if err != nil {
			logger.Fatal("Failed to connect to Database", zap.Error(err))
		}
		if err := pool.Ping(context.Background()); err != nil {
			logger.Fatal("Failed to ping the Database", zap.Error(err))
		}
		store := repo.NewPostgresStore(pool)
		if err := store.EnsureSchema(context.Background()); err != nil {
			logger.Fatal("Failed to prepare schema", zap.Error(err))
		}
		logger.Info("Successfully connected to the Database!")
		return store, pool.Close
	default:
		store, err := repo.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Fatal("Failed to open data dir", zap.String("dir", cfg.DataDir), zap.Error(err))
		}
		return store, func() {}
	}
}

func mustMakeLogger(levelStr string) *zap.Logger {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger
}
