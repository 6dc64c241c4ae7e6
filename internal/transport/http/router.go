package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Zed-Kryp/BlogSphere/internal/handler"
	"github.com/Zed-Kryp/BlogSphere/internal/httputil"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/transport/http/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Resources *handler.ResourceHandler
	Posts     *handler.PostHandler
	Follows   *handler.FollowHandler
	Bookmarks *handler.BookmarkHandler
	Media     *handler.MediaHandler
}

// NewRouter wires up all routes. The API is browser-facing, so CORS is wide
// open and preflight requests always succeed.
func NewRouter(h Handlers, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Api-Key", "X-Amz-Date", "X-Amz-Security-Token"},
		MaxAge:         300,
	}))
	r.Use(middleware.Viewer(jwtSecret))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		// Bare OPTIONS (no preflight headers) still gets a friendly 200.
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		httputil.WriteMethodNotAllowed(w)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)
	r.Post("/forgot-password", h.Auth.ForgotPassword)
	r.Post("/reset-password", h.Auth.ResetPassword)

	// Users and their sub-resources
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.Users.List)
		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/", h.Users.Get)
			r.Put("/", h.Users.Update)
			r.Delete("/", h.Users.Delete)
			r.Get("/followers", h.Follows.Followers)
			r.Get("/following", h.Follows.Following)
			r.Get("/bookmarks", h.Bookmarks.ListPosts)
			r.Get("/posts", h.Posts.UserPosts)
		})
	})

	// Profiles
	r.Post("/profile/upload-url", h.Media.ProfileUploadURL)
	r.Get("/profile/{userId}", h.Users.GetProfile)
	r.Put("/profile/{userId}", h.Users.UpdateProfile)

	// Media
	r.Post("/upload-media", h.Media.Upload)

	// Relationship edges
	r.Post("/user-follows", h.Follows.Create)
	r.Delete("/user-follows/{followerId}/{followedId}", h.Follows.Delete)
	r.Post("/post-bookmarks", h.Bookmarks.Create)
	r.Delete("/post-bookmarks/{userId}/{postId}", h.Bookmarks.Delete)

	// Generic CRUD family. Single blog posts go through the enrichment
	// handler instead of the plain Get.
	for _, resource := range model.CRUDResources {
		resource := resource
		r.Route("/"+resource, func(r chi.Router) {
			r.Get("/", h.Resources.List(resource))
			r.Post("/", h.Resources.Create(resource))
			if resource == model.ResourceBlogPosts {
				r.Get("/{id}", h.Posts.Get)
			} else {
				r.Get("/{id}", h.Resources.Get(resource))
			}
			r.Put("/{id}", h.Resources.Update(resource))
			r.Delete("/{id}", h.Resources.Delete(resource))
		})
	}

	return r
}
