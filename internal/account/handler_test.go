package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler() *Handler {
	return NewHandler(newTestService(newMemRepo()), zap.NewNop().Sugar())
}

func doJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestSignupHandler_Created(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	rec := doJSON(t, h.Signup, `{"email":"alice@example.com","password":"password123"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Account created successfully", resp.Message)
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestSignupHandler_Conflict(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	first := doJSON(t, h.Signup, `{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, h.Signup, `{"email":"alice@example.com","password":"password456"}`)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestSignupHandler_BadInput(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"bad email", `{"email":"nope","password":"password123"}`},
		{"short password", `{"email":"a@b.c","password":"short"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.Signup, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginHandler_SuccessAndFailure(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	rec := doJSON(t, h.Signup, `{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	ok := doJSON(t, h.Login, `{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Contains(t, ok.Body.String(), "Login successful")

	wrongPw := doJSON(t, h.Login, `{"email":"alice@example.com","password":"wrong-password"}`)
	unknown := doJSON(t, h.Login, `{"email":"nobody@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// identical body for both failure modes
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}
