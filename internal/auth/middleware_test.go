package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gateFor(t *testing.T, tokens *Tokens) (http.Handler, *string) {
	t.Helper()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(tokens, zap.NewNop().Sugar())(next), &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := newTestTokens(time.Hour)
	gate, seen := gateFor(t, tokens)

	tok, err := tokens.Issue("acc-42", "a@b.c")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acc-42", *seen)
}

func TestRequireAuth_Rejections(t *testing.T) {
	t.Parallel()

	tokens := newTestTokens(time.Hour)
	expired, err := newTestTokens(-time.Minute).Issue("acc-1", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, _ := gateFor(t, tokens)
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestPrincipalFromContext_Absent(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := PrincipalFromContext(req.Context())
	assert.False(t, ok)
}
