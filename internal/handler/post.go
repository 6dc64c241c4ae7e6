package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Zed-Kryp/BlogSphere/internal/httputil"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/service"
	"github.com/Zed-Kryp/BlogSphere/internal/transport/http/middleware"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Get handles GET /blog-posts/{id} with the full enrichment layer.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	viewerID := viewerID(r)

	post, err := h.posts.GetByID(r.Context(), postID, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] GetPost failed: %v", err)
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// UserPosts handles GET /users/{userId}/posts
func (h *PostHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "userId")

	posts, err := h.posts.UserPosts(r.Context(), authorID)
	if err != nil {
		log.Printf("[ERROR] UserPosts failed: %v", err)
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"items": posts,
		"count": len(posts),
	})
}

// viewerID resolves the caller's identity: a verified bearer token wins,
// otherwise the currentUserId query parameter is trusted for enrichment only.
// The literal "anonymous" means no viewer.
func viewerID(r *http.Request) string {
	if id, ok := middleware.GetViewerID(r.Context()); ok {
		return id
	}
	id := r.URL.Query().Get("currentUserId")
	if strings.EqualFold(id, "anonymous") {
		return ""
	}
	return id
}
