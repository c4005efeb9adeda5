package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/logger"
	"campusmart-be/internal/user"

	"go.uber.org/zap"
)

// IdentityResolver turns a token's subject into a live user record, so a
// token for a deleted account stops working immediately.
type IdentityResolver interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// authFailure carries the client-facing message and unwraps to the
// unauthenticated sentinel.
type authFailure struct{ msg string }

func (e *authFailure) Error() string { return e.msg }
func (e *authFailure) Unwrap() error { return apperr.ErrUnauthenticated }

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// resolveBearer authenticates the request's bearer token and resolves
// its subject. Every failure mode wraps apperr.ErrUnauthenticated.
func resolveBearer(r *http.Request, users IdentityResolver) (user.User, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return user.User{}, &authFailure{"No token provided"}
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := user.ParseJWT(tokenStr)
	if err != nil {
		return user.User{}, &authFailure{"Invalid token"}
	}

	u, err := users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("token subject not found",
			zap.String("user_id", claims.UserID),
		)
		return user.User{}, &authFailure{"User not found"}
	}

	return u, nil
}

// Auth requires a valid bearer token and injects the resolved identity
// into the request context. Absent or invalid credentials yield 401.
func Auth(users IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := resolveBearer(r, users)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}

			ctx := SetUserContext(r.Context(), u.ID, u.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
