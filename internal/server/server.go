// Package server собирает HTTP API удаленного хранилища плана:
// маршруты, middleware и handlers поверх storage.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/tourplan/internal/server/handlers"
	"github.com/iudanet/tourplan/internal/server/middleware"
	"github.com/iudanet/tourplan/internal/server/storage"
)

// Defaults for the login rate limit
const (
	DefaultLoginRate   = 10
	DefaultLoginWindow = time.Minute
)

// Storage все, что серверу нужно от хранилища
type Storage interface {
	storage.UserStorage
	storage.RecordStorage
	handlers.Pinger
}

// Config параметры HTTP API
type Config struct {
	Schedule    handlers.ScheduleConfig
	Version     string
	JWT         handlers.JWTConfig
	LoginRate   int
	LoginWindow time.Duration
}

// Server HTTP API с подключенными handlers
type Server struct {
	handler http.Handler
	auth    *handlers.AuthHandler
	limiter *middleware.RateLimiter
}

// New создает сервер и регистрирует маршруты
func New(logger *slog.Logger, store Storage, cfg Config) *Server {
	if cfg.LoginRate <= 0 {
		cfg.LoginRate = DefaultLoginRate
	}
	if cfg.LoginWindow <= 0 {
		cfg.LoginWindow = DefaultLoginWindow
	}

	s := &Server{
		auth:    handlers.NewAuthHandler(logger, store, cfg.JWT),
		limiter: middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginWindow, logger),
	}

	r := newRouter(routerDeps{
		logger:   logger,
		auth:     s.auth,
		health:   handlers.NewHealthHandler(logger, store, cfg.Version),
		records:  handlers.NewRecordHandler(logger, store),
		schedule: handlers.NewScheduleHandler(logger, store, cfg.Schedule),
		metrics:  middleware.NewMetrics(),
		limiter:  s.limiter,
		jwt:      cfg.JWT,
	})

	s.handler = middleware.RequestIDMiddleware(
		middleware.RecoveryMiddleware(logger)(
			middleware.LoggingWithSkip(logger, skipLogPaths)(r),
		),
	)
	return s
}

// Handler возвращает корневой http.Handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Auth возвращает handler авторизации, нужен для создания администратора
func (s *Server) Auth() *handlers.AuthHandler {
	return s.auth
}

// Close останавливает фоновые goroutine middleware
func (s *Server) Close() {
	s.limiter.Stop()
}
