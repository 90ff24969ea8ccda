package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/api/response"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/security"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// AuthMiddleware validates interview session tokens
type AuthMiddleware struct {
	tokens *security.TokenManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token and binds its session ID to the
// request context. A token for session A can never act on session B: when
// the route carries a {sessionID} URL parameter it must match the token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			// WebSocket clients cannot set headers; accept the token as a
			// query parameter there.
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			response.Unauthorized(w, r, "missing session token")
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			response.Unauthorized(w, r, "invalid or expired token")
			return
		}

		if urlID := chi.URLParam(r, "sessionID"); urlID != "" && urlID != claims.SessionID {
			response.Forbidden(w, r, "token does not match session")
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetSessionID gets the authenticated session ID from context
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}
