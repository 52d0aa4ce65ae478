package main

import (
	"context"
	"log"
	"time"

	"classpoll/config"
	"classpoll/internal/domain/poll"
	"classpoll/internal/handler"
	"classpoll/internal/redis"
	"classpoll/internal/repository"
	"classpoll/internal/server"
	"classpoll/internal/services"
	"classpoll/internal/websocket"
	"classpoll/pkg/database"
	"classpoll/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	defer l.Sync()
	logger.SetGlobalLogger(l)

	database.Connect(cfg)
	if err := database.DB.AutoMigrate(
		&poll.Poll{},
		&poll.Option{},
		&poll.Vote{},
		&poll.TextResponse{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	pollRepo := repository.NewPollRepository(database.DB)
	voteRepo := repository.NewVoteRepository(database.DB)
	responseRepo := repository.NewTextResponseRepository(database.DB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	pollService := services.NewPollService(pollRepo, voteRepo, responseRepo, hub)
	admissionService := services.NewAdmissionService(pollRepo, voteRepo, responseRepo, hub)
	exportService := services.NewExportService(pollRepo, voteRepo)
	authService, err := services.NewAuthService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize admin auth: %v", err)
	}

	// Submission rate limiting is optional; without Redis the middleware
	// passes everything through.
	var limiter *redis.RateLimiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limiter = redis.NewRateLimiter(client, redis.RateLimitConfig{
			SubmitLimit:  cfg.SubmitLimit,
			SubmitWindow: time.Duration(cfg.SubmitWindowSec) * time.Second,
		})
		l.Infof("Submission rate limiting enabled via Redis at %s", cfg.RedisAddr)
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Polls:   handler.NewPollHandler(pollService),
		Votes:   handler.NewVoteHandler(admissionService, pollService),
		Exports: handler.NewExportHandler(exportService),
		Admin:   handler.NewAdminHandler(authService),
		Live:    websocket.NewHandler(pollService, hub),
	}, authService, limiter)

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %s", err)
	}
}
