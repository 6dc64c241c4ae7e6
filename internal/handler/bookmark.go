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

type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

// Create handles POST /post-bookmarks
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.bookmarks.Bookmark(r.Context(), req); err != nil {
		h.writeBookmarkError(w, err, "Bookmark")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Post bookmarked successfully",
	})
}

// Delete handles DELETE /post-bookmarks/{userId}/{postId}
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	postID := chi.URLParam(r, "postId")

	if err := h.bookmarks.Remove(r.Context(), userID, postID); err != nil {
		h.writeBookmarkError(w, err, "RemoveBookmark")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Bookmark removed successfully",
	})
}

// ListPosts handles GET /users/{userId}/bookmarks
func (h *BookmarkHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	posts, err := h.bookmarks.ListPosts(r.Context(), userID)
	if err != nil {
		h.writeBookmarkError(w, err, "ListBookmarkedPosts")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"items": posts,
		"count": len(posts),
	})
}

func (h *BookmarkHandler) writeBookmarkError(w http.ResponseWriter, err error, op string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.WriteBadRequest(w, verr.Msg)
	case errors.Is(err, model.ErrAlreadyBookmarked):
		httputil.WriteConflict(w, "Post already bookmarked by this user")
	case errors.Is(err, model.ErrBookmarkNotFound):
		httputil.WriteNotFound(w, "Bookmark not found")
	default:
		log.Printf("[ERROR] %s failed: %v", op, err)
		httputil.WriteStoreError(w, err)
	}
}
