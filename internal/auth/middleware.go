package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ctxKey string

const principalKey ctxKey = "principal"

// PrincipalFromContext returns the verified account ID attached by
// RequireAuth. Handlers must use this, never an ID from the request
// body or path, for authorization decisions.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalKey).(string)
	return id, ok && id != ""
}

// WithPrincipal attaches an account ID to the context. Exposed for
// tests and background jobs that act on behalf of a known account.
func WithPrincipal(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, principalKey, accountID)
}

// RequireAuth returns middleware that rejects any request without a
// valid bearer token and attaches the verified account ID to the
// request context otherwise. There is no retry or refresh at this
// layer; an invalid token is terminal for the request.
func RequireAuth(tokens *Tokens, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				unauthenticated(w)
				return
			}
			accountID, err := tokens.Verify(raw)
			if err != nil {
				logger.Debugw("token rejected", "remote", r.RemoteAddr)
				unauthenticated(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), accountID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("bearer "):])
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}
