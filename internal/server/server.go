// Package server собирает HTTP сервер: маршруты, middleware цепочку
// и graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/bookshelf/internal/server/config"
	"github.com/iudanet/bookshelf/internal/server/handlers"
	"github.com/iudanet/bookshelf/internal/server/jwt"
	"github.com/iudanet/bookshelf/internal/server/middleware"
)

// Handlers группирует все HTTP handlers сервера
type Handlers struct {
	Auth   *handlers.AuthHandler
	Users  *handlers.UsersHandler
	Books  *handlers.BooksHandler
	Health *handlers.HealthHandler
}

// Server представляет HTTP сервер приложения
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// New создает сервер с настроенным роутером и middleware цепочкой
func New(cfg *config.Config, logger *slog.Logger, tokens *jwt.Service, h Handlers) *Server {
	mux := http.NewServeMux()

	// Публичные auth endpoints под rate limit (защита от перебора паролей)
	authLimit := middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateWindow, logger)
	mux.Handle("POST /api/v1/auth/register", authLimit(http.HandlerFunc(h.Auth.Register)))
	mux.Handle("POST /api/v1/auth/login", authLimit(http.HandlerFunc(h.Auth.Login)))

	// Операции текущего пользователя: identity резолвится middleware,
	// отсутствие identity превращается в Unauthenticated на уровне сервиса
	mux.HandleFunc("GET /api/v1/users/me", h.Users.Me)
	mux.HandleFunc("POST /api/v1/users/me/books", h.Users.SaveBook)
	mux.HandleFunc("DELETE /api/v1/users/me/books/{bookId}", h.Users.RemoveBook)

	// Публичный поиск книг
	mux.HandleFunc("GET /api/v1/books/search", h.Books.Search)

	mux.HandleFunc("GET /api/v1/health", h.Health.Health)

	// Цепочка middleware: recovery снаружи, затем логирование, затем identity
	var handler http.Handler = mux
	handler = middleware.IdentityMiddleware(logger, tokens)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler возвращает корневой http.Handler со всей middleware цепочкой
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и блокируется до отмены контекста,
// затем выполняет graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
