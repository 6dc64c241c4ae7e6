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

type FollowHandler struct {
	follows *service.FollowService
}

func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// Create handles POST /user-follows
func (h *FollowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	warning, err := h.follows.Follow(r.Context(), req)
	if err != nil {
		h.writeFollowError(w, err, "Follow")
		return
	}

	body := map[string]any{"message": "Followed successfully"}
	if warning != "" {
		body["warning"] = warning
	}
	httputil.WriteJSON(w, http.StatusCreated, body)
}

// Delete handles DELETE /user-follows/{followerId}/{followedId}
func (h *FollowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	followerID := chi.URLParam(r, "followerId")
	followedID := chi.URLParam(r, "followedId")

	warning, err := h.follows.Unfollow(r.Context(), followerID, followedID)
	if err != nil {
		h.writeFollowError(w, err, "Unfollow")
		return
	}

	body := map[string]any{"message": "Unfollowed successfully"}
	if warning != "" {
		body["warning"] = warning
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}

// Following handles GET /users/{userId}/following
func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	edges, err := h.follows.Following(r.Context(), userID)
	if err != nil {
		h.writeFollowError(w, err, "Following")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"items": edges,
		"count": len(edges),
	})
}

// Followers handles GET /users/{userId}/followers
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	edges, err := h.follows.Followers(r.Context(), userID)
	if err != nil {
		h.writeFollowError(w, err, "Followers")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"items": edges,
		"count": len(edges),
	})
}

func (h *FollowHandler) writeFollowError(w http.ResponseWriter, err error, op string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.WriteBadRequest(w, verr.Msg)
	case errors.Is(err, model.ErrCannotFollowSelf):
		httputil.WriteBadRequest(w, "Cannot follow yourself")
	case errors.Is(err, model.ErrAlreadyFollowing):
		httputil.WriteConflict(w, "Already following this user")
	case errors.Is(err, model.ErrNotFollowing):
		httputil.WriteNotFound(w, "Follow relationship not found")
	default:
		log.Printf("[ERROR] %s failed: %v", op, err)
		httputil.WriteStoreError(w, err)
	}
}
