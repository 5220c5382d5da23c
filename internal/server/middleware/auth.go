package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/tourplan/internal/server/handlers"
)

const (
	msgNoCredentials = "Authentication credentials were not provided."
	msgInvalidToken  = "Invalid token."
)

// AuthMiddleware создает middleware для проверки токена.
// Принимает заголовок "Authorization: Token <token>", а также "Bearer <token>".
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "Missing Authorization header", "path", r.URL.Path)
				handlers.SendDetail(w, logger, msgNoCredentials, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !isTokenScheme(parts[0]) || strings.TrimSpace(parts[1]) == "" {
				logger.WarnContext(r.Context(), "Invalid Authorization header format")
				handlers.SendDetail(w, logger, msgInvalidToken, http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateToken(jwtConfig, strings.TrimSpace(parts[1]))
			if err != nil {
				logger.WarnContext(r.Context(), "Invalid token", "error", err)
				handlers.SendDetail(w, logger, msgInvalidToken, http.StatusUnauthorized)
				return
			}

			// Добавляем данные из токена в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)

			logger.DebugContext(ctx, "User authenticated", "user_id", claims.UserID, "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isTokenScheme(scheme string) bool {
	return strings.EqualFold(scheme, "Token") || strings.EqualFold(scheme, "Bearer")
}
