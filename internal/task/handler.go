package task

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Hanif8193/Hakathon-Todo/internal/auth"
	"github.com/Hanif8193/Hakathon-Todo/internal/task/entity"
)

// Handler exposes the task CRUD endpoints. Every method resolves the
// owner from the request context put there by the identity gate; ids
// in the path select the row, never the owner.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type listResponse struct {
	Tasks []*entity.Task `json:"tasks"`
	Count int            `json:"count"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	tasks, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err, "list tasks")
		return
	}
	h.writeJSON(w, http.StatusOK, listResponse{Tasks: tasks, Count: len(tasks)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	t, err := h.svc.Create(r.Context(), ownerID, req.Title, req.Description)
	if err != nil {
		h.writeError(w, r, err, "create task")
		return
	}
	h.writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	t, err := h.svc.Get(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "get task")
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	t, err := h.svc.Update(r.Context(), ownerID, r.PathValue("id"), req.Title, req.Description)
	if err != nil {
		h.writeError(w, r, err, "update task")
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *Handler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	t, err := h.svc.ToggleCompletion(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "toggle task")
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		h.writeError(w, r, err, "delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError translates service errors into transport status codes.
// Internal detail is logged, never sent to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidDescription):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.logger.Warnw(op+" timed out", "err", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "temporarily unavailable, retry later"})
	default:
		h.logger.Errorw(op+" failed", "err", err, "path", r.URL.Path)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
