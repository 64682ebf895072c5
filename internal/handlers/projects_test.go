// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/session"
)

func TestViewer(t *testing.T) {
	t.Run("bare request has no identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil)

		sessionID, userID := viewer(r)
		if sessionID != nil {
			t.Errorf("sessionID: got %q, want nil", *sessionID)
		}
		if userID != nil {
			t.Errorf("userID: got %v, want nil", *userID)
		}
	})

	t.Run("guest header token deduplicates anonymous views", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil)
		r.Header.Set(sessionIDHeader, "client-generated-token")

		sessionID, userID := viewer(r)
		if sessionID == nil || *sessionID != "client-generated-token" {
			t.Errorf("sessionID: got %v, want client-generated-token", sessionID)
		}
		if userID != nil {
			t.Errorf("userID: got %v, want nil for a guest", *userID)
		}
	})

	t.Run("login cookie wins over the header token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "login-session-id"})
		r.Header.Set(sessionIDHeader, "client-generated-token")

		sessionID, _ := viewer(r)
		if sessionID == nil || *sessionID != "login-session-id" {
			t.Errorf("sessionID: got %v, want login-session-id", sessionID)
		}
	})

	t.Run("authenticated request carries the user id", func(t *testing.T) {
		uid := uuid.New()
		data := &session.Data{UserID: uid, Username: "dev", Role: models.RoleUser}

		r := httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "login-session-id"})
		r = r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, data))

		sessionID, userID := viewer(r)
		if sessionID == nil || *sessionID != "login-session-id" {
			t.Errorf("sessionID: got %v, want login-session-id", sessionID)
		}
		if userID == nil || *userID != uid {
			t.Errorf("userID: got %v, want %v", userID, uid)
		}
	})

	t.Run("empty header is ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil)
		r.Header.Set(sessionIDHeader, "")

		sessionID, _ := viewer(r)
		if sessionID != nil {
			t.Errorf("sessionID: got %q, want nil", *sessionID)
		}
	})
}
