package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/leadflow/server/internal/services"
)

type userKeyType string

const userIDKey userKeyType = "user_id"

// Auth validates the Bearer session token and adds the verified user id to
// the request context. Handlers derive ownership from the context only and
// never trust a client-supplied user id.
func Auth(issuer *services.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			userID, err := issuer.Verify(strings.TrimSpace(ah[len("Bearer "):]))
			if err != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the verified user id from context, or uuid.Nil when the
// request was not authenticated.
func GetUserID(ctx context.Context) uuid.UUID {
	if v := ctx.Value(userIDKey); v != nil {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
