package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/msrpanel/msr-api/internal/domain/user"
	"github.com/msrpanel/msr-api/internal/pkg/response"
)

type contextKey string

const (
	contextActor   contextKey = "actor"
	contextTokenID contextKey = "token_id"
)

// AuthMiddleware authenticates panel requests: Bearer token, denylist
// check, then the actor row is loaded so every decision downstream
// works off the current persisted user rather than stale claims.
func AuthMiddleware(jwtSvc *JWTService, denylist TokenDenylist, users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtSvc.ValidateToken(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(w, "Token has been revoked")
				return
			}

			actor, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil || actor == nil {
				response.Unauthorized(w, "Account not found")
				return
			}

			if !actor.IsActive || !actor.IsStaff {
				response.Forbidden(w, "Account is inactive")
				return
			}

			ctx := context.WithValue(r.Context(), contextActor, actor)
			ctx = context.WithValue(ctx, contextTokenID, claims.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext extracts the authenticated actor from context
func ActorFromContext(ctx context.Context) *user.User {
	actor, ok := ctx.Value(contextActor).(*user.User)
	if !ok {
		return nil
	}
	return actor
}

// TokenIDFromContext extracts the access token id from context
func TokenIDFromContext(ctx context.Context) string {
	jti, ok := ctx.Value(contextTokenID).(string)
	if !ok {
		return ""
	}
	return jti
}
