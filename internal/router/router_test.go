// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"vibedev/internal/handlers"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// TestNewRegistersRoutes builds the full router with empty handler
// groups and walks the route tree. Chi panics at registration time on
// conflicting patterns, so this catches routing mistakes without a
// database.
func TestNewRegistersRoutes(t *testing.T) {
	h := Handlers{
		Auth:     handlers.NewAuth(nil, nil),
		Projects: handlers.NewProjects(nil, nil, nil, nil, nil, nil),
		Posts:    handlers.NewPosts(nil, nil, nil, nil, nil, nil),
		Comments: handlers.NewComments(nil, nil, nil),
		Profiles: handlers.NewProfiles(nil, nil, nil, nil),
		Events:   handlers.NewEvents(nil),
		Admin:    handlers.NewAdmin(nil, nil, nil, nil, nil),
		Assist:   handlers.NewAssist(nil, nil, nil),
		Uploads:  handlers.NewUploads(nil),
	}

	r := New(nil, false, h)

	routes := map[string]bool{}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}

	want := []string{
		"GET /health",
		"POST /api/auth/login",
		"GET /api/projects/",
		"GET /api/projects/{id}",
		"POST /api/projects/{id}/like",
		"GET /api/projects/{id}/comments",
		"GET /api/posts/{id}",
		"POST /api/comments/{id}/report",
		"GET /api/profiles/{username}",
		"GET /api/events",
		"GET /api/leaderboard",
		"GET /api/mod/reports",
		"GET /api/admin/comments",
		"POST /api/admin/users/{id}/suspend",
	}
	for _, route := range want {
		if !routes[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}

func TestHealthHandlerMethods(t *testing.T) {
	// Health endpoint only accepts GET.
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}
}
