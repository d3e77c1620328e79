package auth

import (
	"net/http"
	"strings"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/internal/shared"
)

// BearerToken extracts the bearer token from the Authorization header, or
// returns the empty string.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// resolved user to the request context.
func RequireAuth(tokens *TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				httpx.Message(w, http.StatusUnauthorized, httpx.ErrUnauthorized.Error())
				return
			}
			user, err := tokens.Validate(r.Context(), token)
			if err != nil {
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithUser(r.Context(), user)))
		})
	}
}
