package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/config"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/fanout"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/handlers"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/push"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/queue"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/routes"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/security"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/store"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/worker"
)

func main() {
	// .env is optional; deployed environments inject real env vars.
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	firebaseClient, err := config.NewFirebaseClient(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase client: %v", err)
	}
	defer firebaseClient.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	chats := store.NewChatService(firebaseClient.Firestore)
	profiles := store.NewProfileService(firebaseClient.Firestore)
	notifications := store.NewNotificationService(firebaseClient.Firestore)

	dispatcher := push.NewDispatcher(firebaseClient.Messaging, push.NewExpoClient(cfg.ExpoPushURL))
	dedupe := fanout.NewRedisDeduper(redisClient)
	orchestrator := fanout.NewOrchestrator(chats, profiles, notifications, dispatcher, dedupe)

	taskQueue := queue.New(cfg.RedisAddr)
	defer taskQueue.Close()

	w := worker.NewWorker(cfg.RedisAddr, orchestrator)
	workerDone := make(chan error, 1)
	go func() {
		workerDone <- w.Start(ctx)
	}()

	sec := security.New(cfg.JWTSecret, cfg.TriggerSecret)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	routes.SetupRoutes(e, sec, handlers.NewTriggerHandler(taskQueue), handlers.NewNotificationHandler(notifications))

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", slog.Any("error", err))
			stop()
		}
	}()

	slog.Info("Notifier started", "addr", cfg.HTTPAddr)

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown failed", slog.Any("error", err))
	}

	if err := <-workerDone; err != nil {
		slog.Error("Worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}
