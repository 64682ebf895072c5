// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vibedev/internal/cache"
	"vibedev/internal/engagement"
	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/session"
	"vibedev/internal/store"
)

// Projects groups the project listing, detail, CRUD, and like handlers.
type Projects struct {
	projects   *store.ProjectStore
	likes      *store.LikeStore
	views      *store.ViewStore
	comments   *store.CommentStore
	engagement *engagement.Service
	refCache   *cache.RefCache
}

// NewProjects creates a new Projects handler group.
func NewProjects(projects *store.ProjectStore, likes *store.LikeStore, views *store.ViewStore, comments *store.CommentStore, eng *engagement.Service, refCache *cache.RefCache) *Projects {
	return &Projects{
		projects:   projects,
		likes:      likes,
		views:      views,
		comments:   comments,
		engagement: eng,
		refCache:   refCache,
	}
}

// sessionIDHeader carries the SPA's client-generated browsing-session
// token, so anonymous views deduplicate without requiring login.
const sessionIDHeader = "X-Session-ID"

// viewer extracts the engagement identity of the request: a session
// identifier for view deduplication and the user id for like state.
// The login session cookie wins when present; guests fall back to the
// client-generated token header. Both are nil for bare requests.
func viewer(r *http.Request) (*string, *uuid.UUID) {
	var sessionID *string
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		sessionID = &cookie.Value
	} else if token := r.Header.Get(sessionIDHeader); token != "" {
		sessionID = &token
	}

	var userID *uuid.UUID
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		userID = &sess.UserID
	}
	return sessionID, userID
}

// List returns a page of projects with like totals and the caller's
// like state joined in, ordered by the requested sort mode.
func (h *Projects) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ProjectFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Page:     pageParam(r),
	}
	mode := models.ParseProjectSort(q.Get("sort"))

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

	h.respondListing(w, r, projects, mode, total)
}

// Featured returns the featured project page with engagement joined in.
func (h *Projects) Featured(w http.ResponseWriter, r *http.Request) {
	filter := store.ProjectFilter{Featured: true, Page: pageParam(r)}

	projects, err := h.projects.List(filter)
	if err != nil {
		respondInternalError(w, "list featured projects failed", err)
		return
	}
	total, err := h.projects.Count(filter)
	if err != nil {
		respondInternalError(w, "count featured projects failed", err)
		return
	}

	h.respondListing(w, r, projects, models.SortTop, total)
}

// respondListing joins a project page with batch like statuses, sorts it
// in memory, and writes the listing envelope.
func (h *Projects) respondListing(w http.ResponseWriter, r *http.Request, projects []models.Project, mode models.ProjectSort, total int) {
	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	_, userID := viewer(r)

	statuses := h.engagement.BatchLikeStatus(r.Context(), models.EntityProject, ids, userID)
	joined := engagement.JoinEngagement(projects, statuses)
	engagement.SortProjects(joined, mode)

	respondJSON(w, http.StatusOK, map[string]any{
		"projects": joined,
		"total":    total,
		"page":     pageParam(r),
	})
}

// Get returns one project with its engagement counters and records a
// view in the background. The URL parameter is normally the slug; a
// UUID is accepted too so internal tools can link by id.
func (h *Projects) Get(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")

	var project *models.Project
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		project, err = h.projects.FindByID(id)
	} else {
		project, err = h.projects.FindBySlug(ref)
	}
	if err != nil {
		respondInternalError(w, "find project failed", err)
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	sessionID, userID := viewer(r)
	h.engagement.RecordViewAsync(models.EntityProject, project.ID, sessionID, userID)

	statuses := h.engagement.BatchLikeStatus(r.Context(), models.EntityProject, []uuid.UUID{project.ID}, userID)
	views, err := h.engagement.ViewCount(r.Context(), models.EntityProject, project.ID)
	if err != nil {
		respondInternalError(w, "count views failed", err)
		return
	}
	commentCount, err := h.comments.CountByEntity(models.EntityProject, project.ID)
	if err != nil {
		respondInternalError(w, "count comments failed", err)
		return
	}

	st := statuses[project.ID]
	respondJSON(w, http.StatusOK, map[string]any{
		"project":       project,
		"like_count":    st.TotalLikes,
		"is_liked":      st.IsLiked,
		"view_count":    views,
		"comment_count": commentCount,
	})
}

type projectRequest struct {
	Title       string   `json:"title"`
	Tagline     *string  `json:"tagline"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	WebsiteURL  *string  `json:"website_url"`
	ImageURL    *string  `json:"image_url"`
	FaviconURL  *string  `json:"favicon_url"`
	Tags        []string `json:"tags"`
}

// Create inserts a project owned by the authenticated user.
func (h *Projects) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateProject(req.Title, deref(req.Tagline), req.Description, req.Tags); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	project, err := h.projects.Create(&models.Project{
		Title:       req.Title,
		Tagline:     req.Tagline,
		Description: req.Description,
		Category:    normalizeCategory(req.Category),
		WebsiteURL:  req.WebsiteURL,
		ImageURL:    req.ImageURL,
		FaviconURL:  req.FaviconURL,
		Tags:        req.Tags,
		AuthorID:    sess.UserID,
	})
	if err != nil {
		respondInternalError(w, "create project failed", err)
		return
	}

	h.refCache.Invalidate(r.Context(), cache.CategoriesKey())
	respondJSON(w, http.StatusCreated, project)
}

// Update modifies a project. Only the owner or an admin may edit; the
// slug never changes.
func (h *Projects) Update(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateProject(req.Title, deref(req.Tagline), req.Description, req.Tags); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	project.Title = req.Title
	project.Tagline = req.Tagline
	project.Description = req.Description
	project.Category = normalizeCategory(req.Category)
	project.WebsiteURL = req.WebsiteURL
	project.ImageURL = req.ImageURL
	project.FaviconURL = req.FaviconURL
	project.Tags = req.Tags

	if err := h.projects.Update(project); err != nil {
		respondInternalError(w, "update project failed", err)
		return
	}

	h.refCache.Invalidate(r.Context(), cache.CategoriesKey())
	respondJSON(w, http.StatusOK, project)
}

// Delete removes a project and everything referencing it. The cascade
// is explicit and ordered: likes, then views, then comments, then the
// project row itself.
func (h *Projects) Delete(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	if err := h.deleteCascade(project.ID); err != nil {
		respondInternalError(w, "delete project failed", err)
		return
	}

	h.refCache.Invalidate(r.Context(), cache.CategoriesKey())
	respondSuccess(w)
}

func (h *Projects) deleteCascade(id uuid.UUID) error {
	if err := h.likes.DeleteByEntity(models.EntityProject, id); err != nil {
		return err
	}
	if err := h.views.DeleteByEntity(models.EntityProject, id); err != nil {
		return err
	}
	if err := h.comments.DeleteByEntity(models.EntityProject, id); err != nil {
		return err
	}
	return h.projects.Delete(id)
}

// Like toggles the caller's like on a project and returns the new state
// with the updated total.
func (h *Projects) Like(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

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

	liked, err := h.engagement.ToggleLike(r.Context(), models.EntityProject, id, sess.UserID)
	if err != nil {
		respondInternalError(w, "toggle like failed", err)
		return
	}
	total, err := h.likes.CountByEntity(models.EntityProject, id)
	if err != nil {
		respondInternalError(w, "count likes failed", err)
		return
	}

	respondJSON(w, http.StatusOK, models.LikeStatus{TotalLikes: total, IsLiked: liked})
}

// Categories returns the distinct category list, served from the
// reference cache when warm.
func (h *Projects) Categories(w http.ResponseWriter, r *http.Request) {
	var categories []string
	if !h.refCache.Get(r.Context(), cache.CategoriesKey(), &categories) {
		var err error
		categories, err = h.projects.Categories()
		if err != nil {
			respondInternalError(w, "list categories failed", err)
			return
		}
		h.refCache.Set(r.Context(), cache.CategoriesKey(), categories)
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// ownedProject loads the project from the URL and enforces that the
// caller owns it or is an admin. Writes the error response itself.
func (h *Projects) ownedProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project id")
		return nil, false
	}
	project, err := h.projects.FindByID(id)
	if err != nil {
		respondInternalError(w, "find project failed", err)
		return nil, false
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return nil, false
	}
	if project.AuthorID != sess.UserID && sess.Role < models.RoleAdmin {
		respondError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return project, true
}

// normalizeCategory maps an empty category to the catch-all bucket.
func normalizeCategory(category string) string {
	if category == "" {
		return "other"
	}
	return category
}

// deref returns the pointed-to string or "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
