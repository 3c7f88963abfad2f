package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secondbrain/internal/config"
	sbhttp "secondbrain/internal/http"
	"secondbrain/internal/notify"
	"secondbrain/internal/repository"
	"secondbrain/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}
	logger.Info("database ready", "path", cfg.DatabaseURL)

	todoRepo := repository.NewTodoRepository(db)
	expRepo := repository.NewExperienceRepository(db)

	todoSvc := service.NewTodoService(todoRepo)
	expSvc := service.NewExperienceService(expRepo)
	ragSvc := service.NewRAGService(expRepo)
	digestSvc := service.NewDigestService(todoRepo)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := service.NewSchedulerService(time.Local)
	jobs := 0

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			summary, err := digestSvc.DailySummary(jobCtx, time.Now())
			if err == nil {
				err = notifier.Send(jobCtx, summary)
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("daily digest failed", "error", err)
			}
		}); err != nil {
			return err
		}
		logger.Info("daily digest scheduled", "at", cfg.DigestTime)
		jobs++
	}

	if cfg.ExportPath != "" {
		if _, err := scheduler.ScheduleInterval(cfg.ExportInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			export, err := ragSvc.ExportJSON(jobCtx, cfg.ExportPath)
			if err != nil {
				logger.Error("rag export failed", "error", err)
				return
			}
			logger.Info("rag export written", "path", cfg.ExportPath, "records", export.TotalRecords)
		}); err != nil {
			return err
		}
		logger.Info("rag export scheduled", "path", cfg.ExportPath, "every", cfg.ExportInterval)
		jobs++
	}

	if jobs > 0 {
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := sbhttp.NewServer(cfg.HTTPPort, logger, sbhttp.RouterDeps{
		Todos:       todoSvc,
		Experiences: expSvc,
		RAG:         ragSvc,
		ExportPath:  cfg.ExportPath,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
