package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kirankamble1523/Task-Manager-App/config"
	"github.com/kirankamble1523/Task-Manager-App/internal/db"
	"github.com/kirankamble1523/Task-Manager-App/internal/handlers"
	"github.com/kirankamble1523/Task-Manager-App/internal/services"
	"github.com/kirankamble1523/Task-Manager-App/internal/store"
	"github.com/kirankamble1523/Task-Manager-App/internal/web"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	taskRepo := store.NewTaskRepository(dbConn)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo)

	renderer, err := web.NewRenderer()
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	sessions := handlers.NewSessionManager(cfg.SessionSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, handlers.NewAuthHandler(userService, sessions, renderer))
	handlers.DashboardRouter(router, handlers.NewDashboardHandler(taskService, renderer), sessions.RequireAuth)
	handlers.TaskRouter(router, handlers.NewTaskHandler(taskService, renderer), sessions.RequireAuth)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		db:         dbConn,
	}, nil
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
