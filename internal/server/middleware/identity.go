package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/bookshelf/internal/server/auth"
	"github.com/iudanet/bookshelf/internal/server/jwt"
)

// IdentityMiddleware создает middleware, который резолвит identity запроса.
// Токен берется из заголовка Authorization: принимается и "Bearer <token>",
// и просто "<token>". Запрос никогда не отклоняется здесь: без токена или с
// невалидным токеном запрос продолжается анонимным, а операции, требующие
// identity, откажут на уровне сервиса. Так публичные endpoints остаются
// доступны без токена.
func IdentityMiddleware(logger *slog.Logger, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				// Невалидный токен = анонимный запрос, без ошибки
				logger.Debug("token verification failed",
					"method", r.Method,
					"path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			ident := &auth.Identity{
				ID:       claims.UserID,
				Username: claims.Username,
				Email:    claims.Email,
			}

			logger.Debug("request authenticated",
				"user_id", ident.ID,
				"username", ident.Username)

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), ident)))
		})
	}
}

// extractToken достает bearer token из заголовка Authorization
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Формат "Bearer <token>" либо токен без схемы
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return strings.TrimSpace(authHeader)
}
