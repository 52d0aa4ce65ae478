package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"classpoll/config"
	"classpoll/internal/handler"
	"classpoll/internal/middleware"
	"classpoll/internal/redis"
	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"
	"classpoll/internal/websocket"
	"classpoll/pkg/database"
	"classpoll/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Polls   *handler.PollHandler
	Votes   *handler.VoteHandler
	Exports *handler.ExportHandler
	Admin   *handler.AdminHandler
	Live    *websocket.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := s.engine.Group("/api")

	// Public listing and retrieval
	api.GET("/polls", handlers.Polls.List)
	api.GET("/polls/:id/votes", handlers.Votes.ListVotes)
	api.GET("/polls/:id/text-responses", handlers.Votes.ListTextResponses)
	api.GET("/polls/:id/live", handlers.Live.Connect)

	// Public submissions, rate limited per client IP when Redis is up
	submit := api.Group("", middleware.SubmitRateLimitMiddleware(limiter))
	submit.POST("/polls/:id/vote", handlers.Votes.Vote)
	submit.POST("/polls/:id/text-response", handlers.Votes.SubmitTextResponse)

	// Admin session
	api.POST("/admin/login", handlers.Admin.Login)
	api.POST("/admin/logout", handlers.Admin.Logout)
	api.GET("/admin/check", handlers.Admin.Check)

	// Admin-gated management and exports
	admin := api.Group("", middleware.AdminRequired(authService))
	admin.POST("/polls", handlers.Polls.Create)
	admin.PUT("/polls/:id", handlers.Polls.Update)
	admin.DELETE("/polls/:id", handlers.Polls.Delete)
	admin.DELETE("/polls/:id/votes", handlers.Polls.ClearVotes)
	admin.GET("/polls/:id/votes/export", handlers.Exports.PollVotes)
	admin.GET("/votes/export", handlers.Exports.AllVotes)
	admin.GET("/polls/export", handlers.Exports.PollsSummary)

	s.setupStatic()
}

// setupStatic serves the front-end files when a static directory is
// configured. The UI is plain files, no templating.
func (s *Server) setupStatic() {
	dir := s.config.StaticDir
	if dir == "" {
		return
	}
	s.engine.StaticFile("/", filepath.Join(dir, "index.html"))
	s.engine.StaticFile("/admin", filepath.Join(dir, "admin.html"))
	s.engine.StaticFile("/login.html", filepath.Join(dir, "login.html"))
	s.engine.StaticFile("/style.css", filepath.Join(dir, "style.css"))
	s.engine.StaticFile("/app.js", filepath.Join(dir, "app.js"))
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
