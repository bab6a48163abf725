// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. It organizes routes into public and authenticated groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth      *handlers.Auth
	Posts     *handlers.Posts
	Comments  *handlers.Comments
	Profiles  *handlers.Profiles
	Taxonomy  *handlers.Taxonomy
	Dashboard *handlers.Dashboard
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Login attempts get their own tighter limiter.
		loginLimiter := middleware.NewRateLimiter(10, time.Minute)

		// Account endpoints — accessible without a session.
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})
		r.Post("/logout", h.Auth.Logout)

		// 2FA — requires auth but NOT completed 2FA: verification is how a
		// half-open session completes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", h.Auth.TwoFASetup)
			r.Post("/2fa/verify", h.Auth.TwoFAVerify)
		})

		// Public reading surface.
		r.Get("/posts", h.Posts.List)
		r.Get("/posts/{slug}", h.Posts.Get)
		r.Get("/posts/{slug}/comments", h.Comments.List)
		r.Get("/posts/{slug}/comments/{commentID}/replies", h.Comments.Replies)
		r.Get("/categories", h.Taxonomy.Categories)
		r.Get("/tags", h.Taxonomy.Tags)
		r.Get("/users/{userID}", h.Profiles.Get)
		r.Get("/users/{userID}/avatar", h.Profiles.Avatar)

		// Cover images are addressed by post ID so they keep working when
		// content is edited.
		r.Get("/post-images/{id}/cover", h.Posts.Cover)

		// Authenticated, 2FA-verified surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/me", h.Auth.Me)
			r.Get("/dashboard", h.Dashboard.Show)

			r.Put("/me/profile", h.Profiles.UpdateBio)
			r.Put("/me/avatar", h.Profiles.UploadAvatar)

			r.Get("/my/posts", h.Posts.Mine)
			r.Post("/posts", h.Posts.Create)
			r.Put("/posts/{id}", h.Posts.Update)
			r.Post("/posts/{id}/archive", h.Posts.ToggleArchive)
			r.Delete("/posts/{id}", h.Posts.Delete)

			r.Post("/posts/{slug}/comments", h.Comments.Add)
			r.Delete("/posts/{slug}/comments/{commentID}", h.Comments.Delete)

			r.Post("/tags", h.Taxonomy.EnsureTag)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
