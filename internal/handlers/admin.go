// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vibedev/internal/ai"
	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/store"
)

// Admin groups the moderation and administration handlers. Every
// mutation here answers {"success":true} or an {"error"} body; the
// boards share the search/status/page query contract of the public
// listings.
type Admin struct {
	users      *store.UserStore
	projects   *store.ProjectStore
	posts      *store.PostStore
	comments   *store.CommentStore
	aiRegistry *ai.Registry // may be nil when no provider is configured
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(users *store.UserStore, projects *store.ProjectStore, posts *store.PostStore, comments *store.CommentStore, aiRegistry *ai.Registry) *Admin {
	return &Admin{
		users:      users,
		projects:   projects,
		posts:      posts,
		comments:   comments,
		aiRegistry: aiRegistry,
	}
}

// --- Boards ---

// Users returns a page of users for the admin board.
func (h *Admin) Users(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	users, err := h.users.List(search, pageParam(r))
	if err != nil {
		respondInternalError(w, "list users failed", err)
		return
	}
	total, err := h.users.Count(search)
	if err != nil {
		respondInternalError(w, "count users failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  pageParam(r),
	})
}

// Projects returns a page of projects for the admin board.
func (h *Admin) Projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ProjectFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Page:     pageParam(r),
	}

	projects, err := h.projects.List(filter)
	if err != nil {
		respondInternalError(w, "list projects failed", err)
		return
	}
	total, err := h.projects.Count(filter)
	if err != nil {
		respondInternalError(w, "count projects failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"total":    total,
		"page":     pageParam(r),
	})
}

// Posts returns a page of posts of any status for the admin board.
func (h *Admin) Posts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.PostFilter{
		Status: models.PostStatus(q.Get("status")),
		Search: q.Get("search"),
		Page:   pageParam(r),
	}

	posts, err := h.posts.List(filter)
	if err != nil {
		respondInternalError(w, "list posts failed", err)
		return
	}
	total, err := h.posts.Count(filter)
	if err != nil {
		respondInternalError(w, "count posts failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"total": total,
		"page":  pageParam(r),
	})
}

// Comments returns a page of all comments for the admin board,
// regardless of report state.
func (h *Admin) Comments(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	comments, err := h.comments.List(search, pageParam(r))
	if err != nil {
		respondInternalError(w, "list comments failed", err)
		return
	}
	total, err := h.comments.Count(search)
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

// ReportedComments returns the pending moderation queue.
func (h *Admin) ReportedComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListReported(pageParam(r))
	if err != nil {
		respondInternalError(w, "list reported comments failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"comments": comments,
		"page":     pageParam(r),
	})
}

// --- Mutations ---

// ToggleFeatured flips a project's featured flag.
func (h *Admin) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project id")
		return
	}
	project, err := h.projects.FindByID(id)
	if err != nil {
		respondInternalError(w, "find project failed", err)
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := h.projects.SetFeatured(id, !project.Featured); err != nil {
		respondInternalError(w, "toggle featured failed", err)
		return
	}
	respondSuccess(w)
}

type suspendRequest struct {
	Suspended bool `json:"suspended"`
}

// Suspend sets or clears a user's suspension. Admins cannot suspend
// themselves.
func (h *Admin) Suspend(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if id == sess.UserID {
		respondError(w, http.StatusBadRequest, "You cannot suspend your own account")
		return
	}

	var req suspendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		respondInternalError(w, "find user failed", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.users.SetSuspended(id, req.Suspended); err != nil {
		respondInternalError(w, "set suspended failed", err)
		return
	}
	respondSuccess(w)
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole changes a user's role. Admins cannot demote themselves, which
// keeps at least one admin reachable.
func (h *Admin) SetRole(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if id == sess.UserID {
		respondError(w, http.StatusBadRequest, "You cannot change your own role")
		return
	}

	var req roleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var role models.Role
	switch req.Role {
	case "user":
		role = models.RoleUser
	case "moderator":
		role = models.RoleModerator
	case "admin":
		role = models.RoleAdmin
	default:
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		respondInternalError(w, "find user failed", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.users.SetRole(id, role); err != nil {
		respondInternalError(w, "set role failed", err)
		return
	}
	respondSuccess(w)
}

type reviewRequest struct {
	Action string  `json:"action"` // "reviewed" or "dismissed"
	Note   *string `json:"note"`
}

// ReviewReport resolves a reported comment.
func (h *Admin) ReviewReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var state models.ReportState
	switch req.Action {
	case "reviewed":
		state = models.ReportReviewed
	case "dismissed":
		state = models.ReportDismissed
	default:
		respondError(w, http.StatusBadRequest, "Invalid action")
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

	if err := h.comments.SetReportState(id, state, req.Note); err != nil {
		respondInternalError(w, "review report failed", err)
		return
	}
	respondSuccess(w)
}

// TriageReport runs a reported comment through the moderation API and
// stores the verdict as the report note, leaving the state pending for
// a human decision.
func (h *Admin) TriageReport(w http.ResponseWriter, r *http.Request) {
	if h.aiRegistry == nil {
		respondError(w, http.StatusServiceUnavailable, "No AI provider configured")
		return
	}

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

	result, err := h.aiRegistry.CheckPrompt(r.Context(), comment.Content)
	if err != nil {
		respondInternalError(w, "moderation check failed", err)
		return
	}

	note := "Automated triage: no policy categories flagged."
	if !result.Safe {
		note = fmt.Sprintf("Automated triage flagged: %s.", strings.Join(result.Categories, ", "))
	}
	if err := h.comments.SetReportState(id, models.ReportPending, &note); err != nil {
		respondInternalError(w, "store triage note failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"safe":       result.Safe,
		"categories": result.Categories,
		"note":       note,
	})
}

// DeleteComment removes a single comment. Used to act on upheld reports.
func (h *Admin) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	if err := h.comments.Delete(id); err != nil {
		respondInternalError(w, "delete comment failed", err)
		return
	}
	respondSuccess(w)
}
