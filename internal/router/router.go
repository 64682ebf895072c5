// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// VibeDev API. Routes are grouped into public, authenticated, and
// moderation/admin areas with the matching middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vibedev/internal/handlers"
	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/session"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth     *handlers.Auth
	Projects *handlers.Projects
	Posts    *handlers.Posts
	Comments *handlers.Comments
	Profiles *handlers.Profiles
	Events   *handlers.Events
	Admin    *handlers.Admin
	Assist   *handlers.Assist
	Uploads  *handlers.Uploads
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, secureCookies bool, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Write endpoints share one per-IP limiter.
	writeLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		// Auth.
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)
		r.With(middleware.RequireAuth).Get("/auth/me", h.Auth.Me)

		// Projects.
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Projects.List)
			r.Get("/featured", h.Projects.Featured)
			r.Get("/categories", h.Projects.Categories)
			r.Get("/{id}", h.Projects.Get)
			r.Get("/{id}/comments", h.Comments.List(models.EntityProject))
			r.With(writeLimiter.Middleware).Post("/{id}/comments", h.Comments.Create(models.EntityProject))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(writeLimiter.Middleware)
				r.Post("/", h.Projects.Create)
				r.Put("/{id}", h.Projects.Update)
				r.Delete("/{id}", h.Projects.Delete)
				r.Post("/{id}/like", h.Projects.Like)
			})
		})

		// Blog posts.
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.Posts.List)
			r.Get("/tags", h.Posts.Tags)
			r.Get("/{id}", h.Posts.Get)
			r.Get("/{id}/comments", h.Comments.List(models.EntityPost))
			r.With(writeLimiter.Middleware).Post("/{id}/comments", h.Comments.Create(models.EntityPost))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(writeLimiter.Middleware)
				r.Post("/", h.Posts.Create)
				r.Put("/{id}", h.Posts.Update)
				r.Delete("/{id}", h.Posts.Delete)
				r.Post("/{id}/like", h.Posts.Like)
			})
		})

		// Reporting is open to guests as well.
		r.With(writeLimiter.Middleware).Post("/comments/{id}/report", h.Comments.Report)

		// Profiles.
		r.Get("/profiles/{username}", h.Profiles.Get)
		r.With(middleware.RequireAuth).Put("/profile", h.Profiles.Update)

		// Events calendar.
		r.Get("/events", h.Events.Month)

		// AI leaderboard and editorial assist.
		r.Get("/leaderboard", h.Assist.Leaderboard)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(writeLimiter.Middleware)
			r.Post("/assist/tagline", h.Assist.SuggestTagline)
			r.Post("/assist/description", h.Assist.ImproveDescription)
			r.Post("/uploads", h.Uploads.Upload)
		})

		// Moderation: report review and triage.
		r.Route("/mod", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireModerator)
			r.Get("/reports", h.Admin.ReportedComments)
			r.Post("/reports/{id}/review", h.Admin.ReviewReport)
			r.Post("/reports/{id}/triage", h.Admin.TriageReport)
			r.Delete("/comments/{id}", h.Admin.DeleteComment)
		})

		// Admin boards and mutations.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Get("/users", h.Admin.Users)
			r.Get("/projects", h.Admin.Projects)
			r.Get("/posts", h.Admin.Posts)
			r.Get("/comments", h.Admin.Comments)
			r.Post("/projects/{id}/feature", h.Admin.ToggleFeatured)
			r.Post("/users/{id}/suspend", h.Admin.Suspend)
			r.Post("/users/{id}/role", h.Admin.SetRole)

			r.Post("/events", h.Events.Create)
			r.Put("/events/{id}", h.Events.Update)
			r.Delete("/events/{id}", h.Events.Delete)
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
