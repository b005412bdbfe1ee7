package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/aidar/jugador-equipo/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// LoginKey ключ контекста для логина из токена
	LoginKey ContextKey = "login"
	// AuthoritiesKey ключ контекста для списка прав
	AuthoritiesKey ContextKey = "authorities"
)

// AuthMiddleware создает middleware для валидации JWT токенов
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid authorization header format")
				return
			}

			// Валидируем токен
			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			// Добавляем claims в контекст
			ctx := context.WithValue(r.Context(), LoginKey, claims.Subject)
			ctx = context.WithValue(ctx, AuthoritiesKey, claims.Authorities())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthority пропускает только запросы, в токене которых есть указанное право.
// Ставится после AuthMiddleware
func RequireAuthority(authority string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(GetAuthoritiesFromContext(r.Context()), authority) {
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", authority+" is required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":{"code":"` + code + `","message":"` + message + `"}}`))
}

// GetLoginFromContext извлекает логин пользователя из контекста
func GetLoginFromContext(ctx context.Context) string {
	login, ok := ctx.Value(LoginKey).(string)
	if !ok {
		return ""
	}
	return login
}

// GetAuthoritiesFromContext извлекает права пользователя из контекста
func GetAuthoritiesFromContext(ctx context.Context) []string {
	authorities, ok := ctx.Value(AuthoritiesKey).([]string)
	if !ok {
		return nil
	}
	return authorities
}
