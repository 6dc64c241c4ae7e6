package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Zed-Kryp/BlogSphere/internal/httputil"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/service"
)

// listFilterAttrs maps resources to the query parameters accepted as
// store-side equality filters.
var listFilterAttrs = map[string][]string{
	model.ResourceBlogPosts:     {"authorId"},
	model.ResourcePostComments:  {"postId"},
	model.ResourcePostReactions: {"postId"},
	model.ResourcePostShares:    {"postId"},
	model.ResourcePostCategory:  {"postId", "categoryId"},
}

// listContainsAttrs maps query parameters to membership filters on
// list-valued attributes: ?categoryId= matches posts whose categories list
// contains the value.
var listContainsAttrs = map[string]map[string]string{
	model.ResourceBlogPosts: {"categoryId": "categories"},
}

// ResourceHandler serves the generic CRUD family. Each method returns a
// handler bound to one resource so the router can mount the same code for
// every table in the catalog.
type ResourceHandler struct {
	resources *service.ResourceService
}

func NewResourceHandler(resources *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// List handles GET /{resource}
func (h *ResourceHandler) List(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := model.ListParams{Limit: model.DefaultListLimit}

		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < model.MinListLimit || limit > model.MaxListLimit {
				httputil.WriteBadRequest(w, fmt.Sprintf(
					"Invalid limit value: %s. Limit must be between %d and %d",
					raw, model.MinListLimit, model.MaxListLimit))
				return
			}
			params.Limit = limit
		}
		params.StartKey = r.URL.Query().Get("last_evaluated_key")

		for _, attr := range listFilterAttrs[resource] {
			if val := r.URL.Query().Get(attr); val != "" {
				if params.Filters == nil {
					params.Filters = map[string]string{}
				}
				params.Filters[attr] = val
			}
		}
		for param, attr := range listContainsAttrs[resource] {
			if val := r.URL.Query().Get(param); val != "" {
				if params.ContainsFilters == nil {
					params.ContainsFilters = map[string]string{}
				}
				params.ContainsFilters[attr] = val
			}
		}

		page, err := h.resources.List(r.Context(), resource, params)
		if err != nil {
			h.writeResourceError(w, err, resource)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, page)
	}
}

// Get handles GET /{resource}/{id}
func (h *ResourceHandler) Get(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec, err := h.resources.Get(r.Context(), resource, id)
		if err != nil {
			h.writeResourceError(w, err, resource)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, rec)
	}
}

// Create handles POST /{resource}
func (h *ResourceHandler) Create(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.Record
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return
		}

		result, err := h.resources.Create(r.Context(), resource, payload)
		if err != nil {
			h.writeResourceError(w, err, resource)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, result)
	}
}

// Update handles PUT /{resource}/{id}
func (h *ResourceHandler) Update(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var fields model.Record
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return
		}

		result, err := h.resources.Update(r.Context(), resource, id, fields)
		if err != nil {
			h.writeResourceError(w, err, resource)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

// Delete handles DELETE /{resource}/{id}
func (h *ResourceHandler) Delete(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := h.resources.Delete(r.Context(), resource, id)
		if err != nil {
			h.writeResourceError(w, err, resource)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

func (h *ResourceHandler) writeResourceError(w http.ResponseWriter, err error, resource string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.WriteBadRequest(w, verr.Msg)
	case errors.Is(err, model.ErrItemNotFound):
		httputil.WriteNotFound(w, "Item not found")
	case errors.Is(err, model.ErrUnknownResource):
		httputil.WriteNotFound(w, "Unknown resource")
	case errors.Is(err, model.ErrDuplicateLike):
		httputil.WriteConflict(w, "Post already liked by this user")
	case errors.Is(err, model.ErrItemExists):
		httputil.WriteConflict(w, "Item already exists")
	default:
		log.Printf("[ERROR] %s operation failed: %v", resource, err)
		httputil.WriteStoreError(w, err)
	}
}
