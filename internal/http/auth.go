package httpapi

import (
	"context"
	"net/http"
	"strings"

	"deliverypro-backend-go/internal/models"
	"deliverypro-backend-go/internal/services"
)

type contextKey string

const (
	ctxUserID    contextKey = "userID"
	ctxUsername  contextKey = "username"
	ctxRole      contextKey = "role"
	ctxSessionID contextKey = "sessionID"
	ctxLocale    contextKey = "locale"
)

func WithAuth(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			token, claims, err := tokenService.ParseToken(tokenStr)
			if err != nil || !token.Valid || claims["typ"] != "access" {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			userID, _ := claims["sub"].(string)
			username, _ := claims["username"].(string)
			role, _ := claims["role"].(string)
			ctx := context.WithValue(r.Context(), ctxUserID, userID)
			ctx = context.WithValue(ctx, ctxUsername, username)
			ctx = context.WithValue(ctx, ctxRole, models.UserRole(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentUserID(r *http.Request) string {
	if value, ok := r.Context().Value(ctxUserID).(string); ok {
		return value
	}
	return ""
}

func CurrentUsername(r *http.Request) string {
	if value, ok := r.Context().Value(ctxUsername).(string); ok {
		return value
	}
	return ""
}

func CurrentRole(r *http.Request) models.UserRole {
	if value, ok := r.Context().Value(ctxRole).(models.UserRole); ok {
		return value
	}
	return ""
}

func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	allowed := map[models.UserRole]bool{}
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed[CurrentRole(r)] {
				WriteError(w, http.StatusForbidden, "Not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
