package http

import (
	"context"
	"net/http"
	"strings"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/security"
	"fleetride-backend/internal/service"
)

type actorKey struct{}

// Authenticate extracts the actor from the bearer token and normalizes the
// role once, here at the boundary. Downstream code only ever sees the
// canonical role set.
func Authenticate(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token", Code: "UNAUTHENTICATED"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "UNAUTHENTICATED"})
				return
			}
			actor := service.Actor{
				ID:   claims.UserID,
				Role: domain.NormalizeRole(claims.Role),
			}
			if !actor.Role.IsValid() {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unknown role", Code: "UNAUTHENTICATED"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
		})
	}
}

func actorFrom(r *http.Request) service.Actor {
	actor, _ := r.Context().Value(actorKey{}).(service.Actor)
	return actor
}
