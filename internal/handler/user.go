package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zed-Kryp/BlogSphere/internal/httputil"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] ListUsers failed: %v", err)
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"items": users,
		"count": len(users),
	})
}

// Get handles GET /users/{userId}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, err, "GetUser")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/{userId}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var fields model.Record
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result, err := h.users.Update(r.Context(), userID, fields)
	if err != nil {
		h.writeUserError(w, err, "UpdateUser")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /users/{userId}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	result, err := h.users.Delete(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, err, "DeleteUser")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetProfile handles GET /profile/{userId}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, err, "GetProfile")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /profile/{userId}
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var fields model.Record
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result, err := h.users.UpdateProfile(r.Context(), userID, fields)
	if err != nil {
		h.writeUserError(w, err, "UpdateProfile")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *UserHandler) writeUserError(w http.ResponseWriter, err error, op string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.WriteBadRequest(w, verr.Msg)
	case errors.Is(err, model.ErrUserNotFound):
		httputil.WriteNotFound(w, "User not found")
	default:
		log.Printf("[ERROR] %s failed: %v", op, err)
		httputil.WriteStoreError(w, err)
	}
}
