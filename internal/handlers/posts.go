// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vibedev/internal/engagement"
	"vibedev/internal/markdown"
	"vibedev/internal/middleware"
	"vibedev/internal/models"
	"vibedev/internal/store"
)

// Posts groups the blog post handlers.
type Posts struct {
	posts      *store.PostStore
	tags       *store.TagStore
	likes      *store.LikeStore
	views      *store.ViewStore
	comments   *store.CommentStore
	engagement *engagement.Service
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *store.PostStore, tags *store.TagStore, likes *store.LikeStore, views *store.ViewStore, comments *store.CommentStore, eng *engagement.Service) *Posts {
	return &Posts{
		posts:      posts,
		tags:       tags,
		likes:      likes,
		views:      views,
		comments:   comments,
		engagement: eng,
	}
}

// List returns a page of published posts, newest first.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	filter := store.PostFilter{
		Status: models.PostStatusPublished,
		Search: r.URL.Query().Get("search"),
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

// Get returns one published post with its body rendered to HTML, its
// tags, and its engagement counters. Records a view in the background.
// The URL parameter is normally the slug; a UUID is accepted too.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")

	var post *models.Post
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		post, err = h.posts.FindByID(id)
		if err == nil && post != nil && !post.IsPublished() {
			post = nil
		}
	} else {
		post, err = h.posts.FindPublishedBySlug(ref)
	}
	if err != nil {
		respondInternalError(w, "find post failed", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	sessionID, userID := viewer(r)
	h.engagement.RecordViewAsync(models.EntityPost, post.ID, sessionID, userID)

	bodyHTML, err := markdown.ToHTML(post.Body)
	if err != nil {
		respondInternalError(w, "render post failed", err)
		return
	}
	postTags, err := h.tags.ListByPost(post.ID)
	if err != nil {
		respondInternalError(w, "list post tags failed", err)
		return
	}

	statuses := h.engagement.BatchLikeStatus(r.Context(), models.EntityPost, []uuid.UUID{post.ID}, userID)
	views, err := h.engagement.ViewCount(r.Context(), models.EntityPost, post.ID)
	if err != nil {
		respondInternalError(w, "count views failed", err)
		return
	}

	st := statuses[post.ID]
	respondJSON(w, http.StatusOK, map[string]any{
		"post":       post,
		"body_html":  bodyHTML,
		"tags":       postTags,
		"like_count": st.TotalLikes,
		"is_liked":   st.IsLiked,
		"view_count": views,
	})
}

type postRequest struct {
	Title         string   `json:"title"`
	Body          string   `json:"body"`
	Excerpt       *string  `json:"excerpt"`
	CoverImageURL *string  `json:"cover_image_url"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags"`
}

// Create inserts a post authored by the authenticated user.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePost(req.Title, req.Body); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := h.posts.Create(&models.Post{
		Title:         req.Title,
		Body:          req.Body,
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
		Status:        postStatus(req.Status),
		AuthorID:      sess.UserID,
	})
	if err != nil {
		respondInternalError(w, "create post failed", err)
		return
	}

	if len(req.Tags) > 0 {
		if err := h.tags.SetPostTags(post.ID, req.Tags); err != nil {
			respondInternalError(w, "set post tags failed", err)
			return
		}
	}

	respondJSON(w, http.StatusCreated, post)
}

// Update modifies a post. Only the author or an admin may edit; the
// slug never changes.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownedPost(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePost(req.Title, req.Body); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	post.Title = req.Title
	post.Body = req.Body
	post.Excerpt = req.Excerpt
	post.CoverImageURL = req.CoverImageURL
	post.Status = postStatus(req.Status)

	if err := h.posts.Update(post); err != nil {
		respondInternalError(w, "update post failed", err)
		return
	}
	if err := h.tags.SetPostTags(post.ID, req.Tags); err != nil {
		respondInternalError(w, "set post tags failed", err)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// Delete removes a post and everything referencing it, in order: likes,
// views, comments, tag links, then the post row.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownedPost(w, r)
	if !ok {
		return
	}

	if err := h.deleteCascade(post.ID); err != nil {
		respondInternalError(w, "delete post failed", err)
		return
	}
	respondSuccess(w)
}

func (h *Posts) deleteCascade(id uuid.UUID) error {
	if err := h.likes.DeleteByEntity(models.EntityPost, id); err != nil {
		return err
	}
	if err := h.views.DeleteByEntity(models.EntityPost, id); err != nil {
		return err
	}
	if err := h.comments.DeleteByEntity(models.EntityPost, id); err != nil {
		return err
	}
	if err := h.tags.ClearPostTags(id); err != nil {
		return err
	}
	return h.posts.Delete(id)
}

// Like toggles the caller's like on a post.
func (h *Posts) Like(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternalError(w, "find post failed", err)
		return
	}
	if post == nil || !post.IsPublished() {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	liked, err := h.engagement.ToggleLike(r.Context(), models.EntityPost, id, sess.UserID)
	if err != nil {
		respondInternalError(w, "toggle like failed", err)
		return
	}
	total, err := h.likes.CountByEntity(models.EntityPost, id)
	if err != nil {
		respondInternalError(w, "count likes failed", err)
		return
	}

	respondJSON(w, http.StatusOK, models.LikeStatus{TotalLikes: total, IsLiked: liked})
}

// Tags returns the full tag list for the blog filter sidebar.
func (h *Posts) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List()
	if err != nil {
		respondInternalError(w, "list tags failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

// ownedPost loads the post from the URL and enforces that the caller
// authored it or is an admin. Writes the error response itself.
func (h *Posts) ownedPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post id")
		return nil, false
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternalError(w, "find post failed", err)
		return nil, false
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	if post.AuthorID != sess.UserID && sess.Role < models.RoleAdmin {
		respondError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return post, true
}

// postStatus maps request input to a valid status, defaulting to draft.
func postStatus(s string) models.PostStatus {
	if s == string(models.PostStatusPublished) {
		return models.PostStatusPublished
	}
	return models.PostStatusDraft
}
