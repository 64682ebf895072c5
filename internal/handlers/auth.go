// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"vibedev/internal/middleware"
	"vibedev/internal/session"
	"vibedev/internal/store"
)

// Auth handles login and logout. Full identity federation lives in a
// separate service; this surface only exchanges credentials for a
// Valkey-backed session the rest of the API consumes.
type Auth struct {
	users    *store.UserStore
	sessions *session.Store
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, sessions *session.Store) *Auth {
	return &Auth{users: users, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and establishes a session. The response to
// a bad username and a bad password is identical on purpose.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.FindByUsername(req.Username)
	if err != nil {
		respondInternalError(w, "login lookup failed", err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if user.Suspended {
		respondError(w, http.StatusForbidden, "Account suspended")
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Suspended:   user.Suspended,
	})
	if err != nil {
		respondInternalError(w, "session create failed", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout destroys the current session. Always succeeds, even without one.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		respondInternalError(w, "session destroy failed", err)
		return
	}
	respondSuccess(w)
}

// Me returns the authenticated user's own record.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	user, err := h.users.FindByID(sess.UserID)
	if err != nil {
		respondInternalError(w, "me lookup failed", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
