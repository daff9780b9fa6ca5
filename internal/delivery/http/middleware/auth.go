package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "slotplanner/internal/delivery/http/helpers"
	"slotplanner/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the user ID in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
// Rejections are logged with the request path and ID so failed auth is visible without tracing.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			reject := func(msg string) {
				logger.WarnContext(r.Context(), "auth rejected",
					"reason", msg, "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()))
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, msg)
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				reject("missing authorization header")
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				reject("invalid authorization format")
				return
			}
			if token = strings.TrimSpace(token); token == "" {
				reject("missing token")
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				reject("invalid or expired token")
				return
			}
			next(w, r.WithContext(SetUserID(r.Context(), userID)))
		}
	}
}
