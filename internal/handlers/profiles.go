// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vibedev/internal/engagement"
	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/store"
)

// Profiles groups the public profile handlers.
type Profiles struct {
	users      *store.UserStore
	projects   *store.ProjectStore
	posts      *store.PostStore
	engagement *engagement.Service
}

// NewProfiles creates a new Profiles handler group.
func NewProfiles(users *store.UserStore, projects *store.ProjectStore, posts *store.PostStore, eng *engagement.Service) *Profiles {
	return &Profiles{users: users, projects: projects, posts: posts, engagement: eng}
}

// publicUser is the profile shape exposed to other members: no email,
// no suspension detail.
type publicUser struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	Role        string  `json:"role"`
	JoinedAt    string  `json:"joined_at"`
}

// Get returns a public profile with aggregate stats and the user's
// projects and published posts.
func (h *Profiles) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByUsername(chi.URLParam(r, "username"))
	if err != nil {
		respondInternalError(w, "find user failed", err)
		return
	}
	if user == nil || user.Suspended {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	stats, err := h.engagement.ProfileStats(r.Context(), user.ID)
	if err != nil {
		respondInternalError(w, "profile stats failed", err)
		return
	}

	projects, err := h.projects.List(store.ProjectFilter{AuthorID: user.ID, Page: 1})
	if err != nil {
		respondInternalError(w, "list user projects failed", err)
		return
	}
	posts, err := h.posts.List(store.PostFilter{
		Status:   models.PostStatusPublished,
		AuthorID: user.ID,
		Page:     1,
	})
	if err != nil {
		respondInternalError(w, "list user posts failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile": publicUser{
			Username:    user.Username,
			DisplayName: user.DisplayName,
			AvatarURL:   user.AvatarURL,
			Bio:         user.Bio,
			Location:    user.Location,
			Role:        user.Role.String(),
			JoinedAt:    user.JoinedAt.Format("2006-01-02"),
		},
		"stats":    stats,
		"projects": projects,
		"posts":    posts,
	})
}

type profileUpdateRequest struct {
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
}

// Update modifies the authenticated user's own profile fields.
func (h *Profiles) Update(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req profileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		respondError(w, http.StatusBadRequest, "Display name is required.")
		return
	}

	if err := h.users.UpdateProfile(sess.UserID, displayName, req.AvatarURL, req.Bio, req.Location); err != nil {
		respondInternalError(w, "update profile failed", err)
		return
	}
	respondSuccess(w)
}
