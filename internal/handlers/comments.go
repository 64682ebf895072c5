// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/store"
)

// Comments groups the comment handlers. The same handlers serve both
// entity kinds; the kind is fixed at route registration time.
type Comments struct {
	comments *store.CommentStore
	projects *store.ProjectStore
	posts    *store.PostStore
}

// NewComments creates a new Comments handler group.
func NewComments(comments *store.CommentStore, projects *store.ProjectStore, posts *store.PostStore) *Comments {
	return &Comments{comments: comments, projects: projects, posts: posts}
}

// entityByID verifies the target entity exists (and, for posts, is
// published). Writes the error response itself on failure.
func (h *Comments) entityByID(w http.ResponseWriter, kind models.EntityKind, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid entity id")
		return uuid.Nil, false
	}

	if kind == models.EntityProject {
		p, err := h.projects.FindByID(id)
		if err != nil {
			respondInternalError(w, "find project failed", err)
			return uuid.Nil, false
		}
		if p == nil {
			respondError(w, http.StatusNotFound, "Project not found")
			return uuid.Nil, false
		}
	} else {
		p, err := h.posts.FindByID(id)
		if err != nil {
			respondInternalError(w, "find post failed", err)
			return uuid.Nil, false
		}
		if p == nil || !p.IsPublished() {
			respondError(w, http.StatusNotFound, "Post not found")
			return uuid.Nil, false
		}
	}

	return id, true
}

// List returns a handler serving a page of comments on one entity,
// oldest first.
func (h *Comments) List(kind models.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.entityByID(w, kind, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		comments, err := h.comments.ListByEntity(kind, id, pageParam(r))
		if err != nil {
			respondInternalError(w, "list comments failed", err)
			return
		}
		total, err := h.comments.CountByEntity(kind, id)
		if err != nil {
			respondInternalError(w, "count comments failed", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"comments": comments,
			"total":    total,
			"page":     pageParam(r),
		})
	}
}

type commentRequest struct {
	Content   string `json:"content"`
	GuestName string `json:"guest_name"`
}

// Create returns a handler that adds a comment. Members comment under
// their account; anonymous visitors must supply a guest name.
func (h *Comments) Create(kind models.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.entityByID(w, kind, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		var req commentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		sess := middleware.SessionFromCtx(r.Context())
		if sess != nil && sess.Suspended {
			respondError(w, http.StatusForbidden, "Account suspended")
			return
		}
		if msg := validateComment(req.Content, req.GuestName, sess != nil); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}

		comment := &models.Comment{Content: strings.TrimSpace(req.Content)}
		if kind == models.EntityProject {
			comment.ProjectID = &id
		} else {
			comment.PostID = &id
		}
		if sess != nil {
			comment.UserID = &sess.UserID
		} else {
			name := strings.TrimSpace(req.GuestName)
			comment.GuestName = &name
		}

		created, err := h.comments.Create(comment)
		if err != nil {
			respondInternalError(w, "create comment failed", err)
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

// Report flags a comment for moderation. Anyone can report; repeated
// reports keep the state at pending.
func (h *Comments) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}
	comment, err := h.comments.FindByID(id)
	if err != nil {
		respondInternalError(w, "find comment failed", err)
		return
	}
	if comment == nil {
		respondError(w, http.StatusNotFound, "Comment not found")
		return
	}

	if err := h.comments.SetReportState(id, models.ReportPending, nil); err != nil {
		respondInternalError(w, "report comment failed", err)
		return
	}
	respondSuccess(w)
}
