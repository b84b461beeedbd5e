package middleware

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/finledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserIDKey is the context key for storing the authenticated user ID.
const UserIDKey contextKey = "user_id"

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

func authenticate(jwtManager *auth.JWTManager, header string) (string, error) {
	token, err := bearerToken(header)
	if err != nil {
		return "", err
	}
	claims, err := jwtManager.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// RequireAuth returns an interceptor that validates the bearer token of
// every RPC and stores the token's user ID in the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID, err := authenticate(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithUserID(ctx, userID), req)
		}
	}
}

// RequireAuthHTTP is RequireAuth for plain HTTP routes such as the
// spreadsheet exports.
func RequireAuthHTTP(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authenticate(jwtManager, r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
