package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Hanif8193/Hakathon-Todo/internal/account/entity"
)

// Handler exposes the signup and login endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	User    profileResponse `json:"user"`
	Token   string          `json:"token"`
	Message string          `json:"message"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	res, err := h.svc.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			h.writeJSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.logger.Errorw("signup failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "signup failed"})
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, newAuthResponse(res, "Account created successfully"))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		h.logger.Errorw("login failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}

	h.writeJSON(w, http.StatusOK, newAuthResponse(res, "Login successful"))
}

func newAuthResponse(res *AuthResult, message string) authResponse {
	return authResponse{
		User:    newProfile(res.Account),
		Token:   res.Token,
		Message: message,
	}
}

func newProfile(a *entity.Account) profileResponse {
	return profileResponse{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
